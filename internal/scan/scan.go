// Package scan turns uploaded DICOM studies into displayable images: it
// decodes the pixel data of the first frame and rescales its intensities to
// the 8-bit range.
package scan

import (
	"errors"
	"fmt"
)

// Scan holds the decoded pixel matrix of a single DICOM frame plus the bits
// of metadata the UI shows. Pixels is row-major with one sample per pixel;
// values may be negative for signed modalities such as CT.
type Scan struct {
	Rows   int
	Cols   int
	Pixels []int

	Modality  string
	StudyDate string
}

// DecodeError reports a byte stream that could not be read as a DICOM image:
// unparseable input, missing pixel data, or frames this service cannot
// decode.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("dicom decode: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

// ErrConstantImage is returned by Normalize when every pixel holds the same
// value, so min-max rescaling has no defined result.
var ErrConstantImage = errors.New("scan: constant-valued image cannot be normalized")
