// Package options provides shared input-selection validation, used
// wherever a document can arrive through more than one channel (a file
// path, inline content, stdin).
package options

import "fmt"

// ValidateSingleInputSource ensures exactly one input source is specified.
// sources is a variadic list of booleans indicating whether each source is
// set; noSourceMsg and multiSourceMsg are the respective error messages.
func ValidateSingleInputSource(noSourceMsg, multiSourceMsg string, sources ...bool) error {
	sourceCount := 0
	for _, hasSource := range sources {
		if hasSource {
			sourceCount++
		}
	}

	if sourceCount == 0 {
		return fmt.Errorf("%s", noSourceMsg)
	}
	if sourceCount > 1 {
		return fmt.Errorf("%s", multiSourceMsg)
	}

	return nil
}
