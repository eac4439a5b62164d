package mcpserver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/internal/testutil"
)

func TestHandleShowInlineContent(t *testing.T) {
	result, output, err := handleShow(context.Background(), nil, showInput{
		Document: documentInput{Content: testutil.DesktopDocumentYAML},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "1", output.Version)
	assert.Equal(t, 2, output.EntryCount)
	require.Len(t, output.Entries, 2)
	assert.Equal(t, "gsettings", output.Entries[0].Domain)
	assert.Equal(t, "org.gnome.desktop.interface.clock-format", output.Entries[0].Path)
	assert.Equal(t, "24h", output.Entries[0].Value)

	// The rendered form must parse back to the same config.
	reparsed, perr := document.Parse([]byte(output.Rendered), domain.NewRegistry())
	require.NoError(t, perr)
	assert.True(t, document.Equal(testutil.NewDesktopConfig(), reparsed))
}

func TestHandleShowFromFile(t *testing.T) {
	path := testutil.WriteDocument(t, "config.yaml", testutil.MinimalDocumentYAML)

	result, output, err := handleShow(context.Background(), nil, showInput{
		Document: documentInput{File: path},
	})
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Zero(t, output.EntryCount)
	assert.Empty(t, output.Entries)
}

func TestHandleShowUserDomains(t *testing.T) {
	doc := `version: '1'
domains:
  brew:
    type: list
    add: brew install $value
    remove: brew uninstall $value
config:
  - brew:
      - jq
`
	result, output, err := handleShow(context.Background(), nil, showInput{
		Document: documentInput{Content: doc},
	})
	require.NoError(t, err)
	require.Nil(t, result)

	require.Len(t, output.UserDomains, 1)
	assert.Equal(t, showDomainSpec{Key: "brew", Kind: "list", Depth: 0}, output.UserDomains[0])
}

func TestHandleShowRejectsInvalidDocument(t *testing.T) {
	result, _, err := handleShow(context.Background(), nil, showInput{
		Document: documentInput{Content: "version: '99'\n"},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}
