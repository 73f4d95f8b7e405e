package sca

import "errors"

// Sentinel errors for library discovery.
var (
	// ErrMissingLibraryRoot indicates the SCA folder itself does not exist.
	ErrMissingLibraryRoot = errors.New("can't find SCA folder")
	// ErrMissingCategoryFolder indicates one of the nine class folders is absent.
	ErrMissingCategoryFolder = errors.New("can't find class folder")
	// ErrUnknownCategory indicates a name that is not one of the nine classes.
	ErrUnknownCategory = errors.New("unknown class")
)
