package runner_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisskorka/sysconf"
	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/errorhandler"
	"github.com/chrisskorka/sysconf/internal/runner"
	"github.com/chrisskorka/sysconf/internal/testutil"
	"github.com/chrisskorka/sysconf/sysexec"
)

func previewOptions(t *testing.T, oldPath, newPath string) (runner.Options, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	return runner.Options{
		OldPath:  oldPath,
		NewPath:  newPath,
		Reader:   sysconf.OSFileReader{},
		Writer:   sysconf.OSFileWriter{},
		Executor: sysexec.NewPreviewExecutor(&buf),
		Handler:  errorhandler.NonInteractiveErrorHandler{},
		Out:      &buf,
	}, &buf
}

func TestReconcileFirstRunWithoutHistory(t *testing.T) {
	newPath := testutil.WriteDocument(t, "config.yaml", testutil.DesktopDocumentYAML)
	missing := filepath.Join(t.TempDir(), "does-not-exist.yaml")

	opts, buf := previewOptions(t, missing, newPath)
	result, err := runner.Reconcile(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, ""+
		"gsettings set org.gnome.desktop.interface clock-format '24h'\n"+
		"gsettings set org.gnome.desktop.interface color-scheme 'prefer-dark'\n", buf.String())
	assert.Len(t, result.Config.Entries, 2)
	assert.False(t, result.Persisted)
}

func TestReconcileNoChanges(t *testing.T) {
	path := testutil.WriteDocument(t, "config.yaml", testutil.DesktopDocumentYAML)

	opts, buf := previewOptions(t, path, path)
	result, err := runner.Reconcile(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, "# No changes required.\n", buf.String())
	assert.True(t, document.Equal(testutil.NewDesktopConfig(), result.Config))
}

func TestReconcilePersistsAppliedState(t *testing.T) {
	newPath := testutil.WriteDocument(t, "config.yaml", testutil.DesktopDocumentYAML)
	oldPath := testutil.WriteDocument(t, "history.yaml", testutil.MinimalDocumentYAML)
	persistPath := filepath.Join(t.TempDir(), "history", "current.yaml")

	opts, _ := previewOptions(t, oldPath, newPath)
	opts.PersistPath = persistPath
	result, err := runner.Reconcile(context.Background(), opts)
	require.NoError(t, err)
	assert.True(t, result.Persisted)

	data, err := sysconf.OSFileReader{}.Read(persistPath)
	require.NoError(t, err)
	reparsed, err := document.Parse([]byte(data), domain.NewRegistry())
	require.NoError(t, err)
	assert.True(t, document.Equal(result.Config, reparsed))
}

func TestReconcileRejectsInvalidTargetDocument(t *testing.T) {
	badPath := testutil.WriteDocument(t, "config.yaml", "version: '99'\n")
	oldPath := testutil.WriteDocument(t, "history.yaml", testutil.MinimalDocumentYAML)

	opts, _ := previewOptions(t, oldPath, badPath)
	_, err := runner.Reconcile(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported document version")
}

func TestLoadParsesSingleDocument(t *testing.T) {
	path := testutil.WriteDocument(t, "config.yaml", testutil.DesktopDocumentYAML)

	cfg, err := runner.Load(sysconf.OSFileReader{}, path, domain.NewRegistry())
	require.NoError(t, err)
	assert.True(t, document.Equal(testutil.NewDesktopConfig(), cfg))
}
