package commands

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
	"github.com/chrisskorka/sysconf/internal/testutil"
)

func TestResolveTargetPathDefaults(t *testing.T) {
	assert.Equal(t, "explicit.yaml", resolveTargetPath("explicit.yaml"))
	assert.Equal(t, sysconf.DefaultPaths{}.NewConfigPath(), resolveTargetPath(""))
}

func TestResolveHistoryPathDefaults(t *testing.T) {
	assert.Equal(t, "old.yaml", resolveHistoryPath("old.yaml"))
	assert.Equal(t, sysconf.DefaultPaths{}.OldConfigPath(), resolveHistoryPath(""))
}

func TestPrintSummaryGroupsByDomain(t *testing.T) {
	cfg := &document.SystemConfig{
		BeforeActions: []string{"echo hello"},
		Entries: []domain.Entry{
			testutil.NewListEntry("apt", nil, "htop"),
			testutil.NewListEntry("apt", nil, "jq"),
			testutil.NewMapEntry("gsettings", []string{"org.schema", "key"}, "value"),
		},
		AfterActions: []string{"echo done"},
	}

	var buf bytes.Buffer
	printSummary(&buf, cfg)

	assert.Equal(t, ""+
		"Before:\n"+
		"  echo hello\n"+
		"Apt:\n"+
		"  htop\n"+
		"  jq\n"+
		"Gsettings:\n"+
		"  org.schema.key: value\n"+
		"After:\n"+
		"  echo done\n", buf.String())
}

func TestPrintSummaryTitleCasesHyphenatedKeys(t *testing.T) {
	cfg := &document.SystemConfig{
		Entries: []domain.Entry{
			testutil.NewListEntry("apt-repository", nil, "ppa:example/ppa"),
		},
	}

	var buf bytes.Buffer
	printSummary(&buf, cfg)
	assert.Contains(t, buf.String(), "Apt Repository:\n")
}

func TestPrintSummaryEmptyConfig(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, &document.SystemConfig{})
	assert.Equal(t, "Empty configuration.\n", buf.String())
}

func TestHandleShowRejectsExtraArgs(t *testing.T) {
	err := HandleShow([]string{"a.yaml", "b.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most one")
}

func TestHandlePreviewWithExplicitDocuments(t *testing.T) {
	oldPath := testutil.WriteDocument(t, "history.yaml", testutil.MinimalDocumentYAML)
	newPath := testutil.WriteDocument(t, "config.yaml", testutil.DesktopDocumentYAML)

	err := HandlePreview(context.Background(), []string{"--old", oldPath, newPath})
	require.NoError(t, err)
}

func TestHandlePreviewParseFailure(t *testing.T) {
	oldPath := testutil.WriteDocument(t, "history.yaml", testutil.MinimalDocumentYAML)
	badPath := testutil.WriteDocument(t, "config.yaml", "not: a: valid: doc\n")

	err := HandlePreview(context.Background(), []string{"--old", oldPath, badPath})
	require.Error(t, err)
}

func TestHandleApplyPersistsHistory(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history", "current.yaml")
	newPath := testutil.WriteDocument(t, "config.yaml", "version: '1'\nbefore:\n  - \"true\"\nconfig: []\n")

	err := HandleApply(context.Background(), []string{"--non-interactive", "--old", historyPath, newPath})
	require.NoError(t, err)

	data, err := sysconf.OSFileReader{}.Read(historyPath)
	require.NoError(t, err)
	persisted, err := document.Parse([]byte(data), domain.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, []string{"true"}, persisted.BeforeActions)
}

func TestHandleApplyIncompleteRun(t *testing.T) {
	historyPath := filepath.Join(t.TempDir(), "history", "current.yaml")
	newPath := testutil.WriteDocument(t, "config.yaml", "version: '1'\nbefore:\n  - \"false\"\nconfig: []\n")

	err := HandleApply(context.Background(), []string{"--non-interactive", "--old", historyPath, newPath})
	require.ErrorIs(t, err, ErrIncomplete)

	// The empty partial state is still recorded.
	data, rerr := sysconf.OSFileReader{}.Read(historyPath)
	require.NoError(t, rerr)
	persisted, perr := document.Parse([]byte(data), domain.NewRegistry())
	require.NoError(t, perr)
	assert.Empty(t, persisted.BeforeActions)
}

func TestHandleListDomains(t *testing.T) {
	err := HandleListDomains(nil)
	require.NoError(t, err)
}

func TestHandleListDomainsRejectsPositionalArgs(t *testing.T) {
	err := HandleListDomains([]string{"extra"})
	require.Error(t, err)
}
