package jwalk

import "errors"

// ErrInvalid is returned when the input contains a structural or character
// error: a bad escape, a missing delimiter, an unexpected byte.
var ErrInvalid = errors.New("jwalk: invalid json")

// ErrIncomplete is returned when the document ends before a value closes,
// at a position where more input could still complete it.
var ErrIncomplete = errors.New("jwalk: incomplete json")

// ErrPathNotFound is returned by ScanfArrayElem when the requested index
// doesn't exist. NextKey, NextElem, and Setf report a missing path through
// a bool result instead of this error, since "no next sibling" and "no
// span to replace" are expected iteration/mutation outcomes for those
// rather than a failed lookup — but ScanfArrayElem asks for one specific
// path, so an absent one is reported as an error, the same distinction
// minio-simdjson-go's FindPath draws for its own single-path accessor.
var ErrPathNotFound = errors.New("jwalk: path not found")
