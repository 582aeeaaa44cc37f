package scan

import (
	"image"
	"math"
)

// Normalize rescales the scan's intensities to the full 8-bit range with a
// linear min-max mapping: the darkest pixel maps to 0, the brightest to 255,
// and ordering is preserved in between. The output keeps the scan's spatial
// shape. A scan with no intensity range at all returns ErrConstantImage.
func Normalize(s *Scan) (*image.Gray, error) {
	if len(s.Pixels) == 0 {
		return nil, ErrConstantImage
	}

	lo, hi := s.Pixels[0], s.Pixels[0]
	for _, v := range s.Pixels[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return nil, ErrConstantImage
	}

	img := image.NewGray(image.Rect(0, 0, s.Cols, s.Rows))
	span := float64(hi - lo)
	for i, v := range s.Pixels {
		img.Pix[i] = uint8(math.Round(float64(v-lo) / span * 255))
	}
	return img, nil
}
