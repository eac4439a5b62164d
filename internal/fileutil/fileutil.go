package fileutil

import "os"

// OwnerReadWrite is the file permission mode for persisted configuration
// state. History documents can embed credentials in user-domain scripts
// (tokens in keyring URLs, for instance), so they stay owner-only.
const OwnerReadWrite os.FileMode = 0o600

// OwnerTraversable is the directory permission mode for the config and
// history directories created on first run.
const OwnerTraversable os.FileMode = 0o755
