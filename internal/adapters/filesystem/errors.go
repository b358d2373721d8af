package filesystem

import "errors"

// Sentinel kinds for filesystem errors.
var (
	ErrOutsideRoot = errors.New("path escapes root")
	ErrNotExist    = errors.New("file does not exist")
	ErrNotRegular  = errors.New("not a regular file")
	ErrRootMissing = errors.New("root is not a directory")
)
