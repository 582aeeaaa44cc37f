package scan

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

// Decode parses a DICOM stream and extracts its pixel data. Multi-frame
// files are reduced to the first frame, multi-sample pixels to their first
// sample. Any parse or pixel-extraction failure comes back as a *DecodeError
// wrapping the cause.
func Decode(r io.Reader) (*Scan, error) {
	ds, err := dicom.ParseUntilEOF(r, nil)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	el, err := ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, &DecodeError{Err: errors.New("no pixel data element")}
	}
	info := dicom.MustGetPixelDataInfo(el.Value)
	if len(info.Frames) == 0 {
		return nil, &DecodeError{Err: errors.New("pixel data holds no frames")}
	}

	frame, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	if frame.Rows <= 0 || frame.Cols <= 0 || len(frame.Data) == 0 {
		return nil, &DecodeError{Err: errors.New("empty pixel matrix")}
	}
	if frame.Rows*frame.Cols != len(frame.Data) {
		return nil, &DecodeError{Err: fmt.Errorf("pixel matrix is %d values, want %dx%d",
			len(frame.Data), frame.Rows, frame.Cols)}
	}

	s := &Scan{
		Rows:      frame.Rows,
		Cols:      frame.Cols,
		Pixels:    make([]int, len(frame.Data)),
		Modality:  stringTag(ds, tag.Modality),
		StudyDate: stringTag(ds, tag.StudyDate),
	}
	for i, samples := range frame.Data {
		if len(samples) == 0 {
			return nil, &DecodeError{Err: fmt.Errorf("pixel %d has no samples", i)}
		}
		s.Pixels[i] = samples[0]
	}
	return s, nil
}

// stringTag reads the first string value of an optional dataset element,
// empty when the element is absent or not string-valued.
func stringTag(ds dicom.Dataset, t tag.Tag) string {
	el, err := ds.FindElementByTag(t)
	if err != nil {
		return ""
	}
	vals, ok := el.Value.GetValue().([]string)
	if !ok || len(vals) == 0 {
		return ""
	}
	return strings.TrimSpace(vals[0])
}
