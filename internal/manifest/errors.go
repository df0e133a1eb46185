package manifest

import "fmt"

// Error is a problem at a specific place of a document.
type Error struct {
	File string // document file, may be empty
	Path string // position inside the document, e.g. "classes[1].methods[0]"
	Err  error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.File != "" && e.Path != "":
		return fmt.Sprintf("%s: %s: %v", e.File, e.Path, e.Err)
	case e.File != "":
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
