// Package pathutil provides path-building and output-path-safety helpers
// used by the flatten package and the root package's file writer.
//
// [PathBuilder] builds a dotted entry path incrementally with push/pop
// semantics, avoiding intermediate string allocation while a domain walks
// a nested structure. [Join] covers the common case of rendering a
// fixed-depth segment slice (a domain entry's Path) in one call:
//
//	path := pathutil.Join([]string{"org.gnome.desktop.interface", "clock-format"})
//
// Array indices are supported via [PathBuilder.PushIndex], which omits the
// dot separator:
//
//	var b pathutil.PathBuilder
//	b.Push("groups")
//	b.PushIndex(0)
//	b.Push("name")
//	b.String() // "groups[0].name"
//
// [SanitizeOutputPath] validates and cleans history and state file paths
// before they are written to disk. It resolves ".." segments lexically
// into an absolute path rather than rejecting them, and refuses a path
// whose final element is a symlink:
//
//	safe, err := pathutil.SanitizeOutputPath(userProvidedPath)
//	if err != nil {
//	    return err
//	}
package pathutil
