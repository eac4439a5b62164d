// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chrisskorka/sysconf/document"
	"github.com/chrisskorka/sysconf/domain"
	"github.com/chrisskorka/sysconf/flatten"
	"github.com/chrisskorka/sysconf/yamlvalue"
)

// NewEmptyConfig creates the minimal valid SystemConfig: no scripts, no
// entries, no user domains. This is what a first run's missing history
// file parses as.
func NewEmptyConfig() *document.SystemConfig {
	return &document.SystemConfig{}
}

// NewMapEntry creates a map-domain entry with a string payload.
func NewMapEntry(domainKey string, path []string, value string) domain.Entry {
	return domain.Entry{
		DomainKey: domainKey,
		Kind:      domain.MapKind,
		Path:      flatten.Path(path),
		Value:     yamlvalue.String(value),
	}
}

// NewListEntry creates a list-domain entry whose value is part of its
// identity.
func NewListEntry(domainKey string, path []string, value string) domain.Entry {
	return domain.Entry{
		DomainKey: domainKey,
		Kind:      domain.ListKind,
		Path:      flatten.Path(path),
		Value:     yamlvalue.String(value),
	}
}

// NewDesktopConfig creates a SystemConfig with a couple of gsettings
// entries, the common shape for engine and renderer tests.
func NewDesktopConfig() *document.SystemConfig {
	return &document.SystemConfig{
		Entries: []domain.Entry{
			NewMapEntry("gsettings", []string{"org.gnome.desktop.interface", "clock-format"}, "24h"),
			NewMapEntry("gsettings", []string{"org.gnome.desktop.interface", "color-scheme"}, "prefer-dark"),
		},
	}
}

// NewUserListDomainConfig creates a SystemConfig declaring one user list
// domain with a single entry, so tests exercise the domains: section plus
// the add/remove script pipeline in one fixture.
func NewUserListDomainConfig(key, value string) *document.SystemConfig {
	return &document.SystemConfig{
		UserDomains: []document.UserDomainDef{
			{Key: key, Spec: domain.UserDomainSpec{
				Type:   domain.ListKind,
				Add:    "echo add $value",
				Remove: "echo remove $value",
			}},
		},
		Entries: []domain.Entry{NewListEntry(key, nil, value)},
	}
}

// MinimalDocumentYAML is the smallest parsable document.
const MinimalDocumentYAML = "version: '1'\n"

// DesktopDocumentYAML declares two gsettings keys, matching
// NewDesktopConfig entry for entry.
const DesktopDocumentYAML = `version: '1'
config:
  - gsettings:
      org.gnome.desktop.interface:
        clock-format: 24h
        color-scheme: prefer-dark
`

// WriteDocument writes contents to a file under t.TempDir() and returns
// its path. The file is removed automatically when the test finishes.
func WriteDocument(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

// Ptr returns a pointer to v, for filling optional fixture fields inline.
func Ptr[T any](v T) *T {
	return &v
}
