package checkpointer

import "fmt"

// FilenameEnumerator returns a function which returns filenames with
// an increasing integer suffix, starting at start + 1. The filename
// parameter is the full filename with its path, while the extension
// parameter determines the file extension.
func FilenameEnumerator(start int, filename, extension string) func() string {
	i := start
	return func() string {
		i++
		return fmt.Sprintf("%v%v%v", filename, i, extension)
	}
}
