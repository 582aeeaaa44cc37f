package scan_test

import (
	"errors"
	"testing"

	"github.com/m-a-mohsen/brainct-analyzer/internal/scan"
)

func grayValues(t *testing.T, s *scan.Scan) []uint8 {
	t.Helper()
	img, err := scan.Normalize(s)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	return img.Pix
}

func TestNormalizeFullRange(t *testing.T) {
	s := &scan.Scan{Rows: 2, Cols: 2, Pixels: []int{10, 20, 30, 40}}
	got := grayValues(t, s)
	want := []uint8{0, 85, 170, 255}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pixel %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNormalizeBounds(t *testing.T) {
	cases := map[string][]int{
		"small ints":  {7, 500, 123, 99, 8},
		"signed ct":   {-1024, -512, 0, 1024, 3071},
		"sixteen bit": {0, 65535, 32000, 12, 64000},
		"two values":  {3, 9},
	}
	for name, pixels := range cases {
		s := &scan.Scan{Rows: 1, Cols: len(pixels), Pixels: pixels}
		got := grayValues(t, s)

		lo, hi := got[0], got[0]
		for _, v := range got {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if lo != 0 || hi != 255 {
			t.Errorf("%s: output range [%d, %d], want [0, 255]", name, lo, hi)
		}
	}
}

func TestNormalizeMonotonic(t *testing.T) {
	pixels := []int{40, -3, 1200, 77, 77, 0, 9000, -3, 512}
	s := &scan.Scan{Rows: 3, Cols: 3, Pixels: pixels}
	got := grayValues(t, s)

	for i := range pixels {
		for j := range pixels {
			if pixels[i] <= pixels[j] && got[i] > got[j] {
				t.Errorf("ordering broken: input %d <= %d but output %d > %d",
					pixels[i], pixels[j], got[i], got[j])
			}
		}
	}
}

func TestNormalizeSigned(t *testing.T) {
	s := &scan.Scan{Rows: 1, Cols: 3, Pixels: []int{-1024, 0, 3071}}
	got := grayValues(t, s)
	if got[0] != 0 {
		t.Errorf("minimum maps to %d, want 0", got[0])
	}
	if got[2] != 255 {
		t.Errorf("maximum maps to %d, want 255", got[2])
	}
	if got[1] != 64 { // round(1024/4095*255)
		t.Errorf("midpoint maps to %d, want 64", got[1])
	}
}

func TestNormalizeConstant(t *testing.T) {
	s := &scan.Scan{Rows: 2, Cols: 2, Pixels: []int{7, 7, 7, 7}}
	if _, err := scan.Normalize(s); !errors.Is(err, scan.ErrConstantImage) {
		t.Fatalf("Normalize on constant image = %v, want ErrConstantImage", err)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	s := &scan.Scan{}
	if _, err := scan.Normalize(s); !errors.Is(err, scan.ErrConstantImage) {
		t.Fatalf("Normalize on empty scan = %v, want ErrConstantImage", err)
	}
}

func TestNormalizeShape(t *testing.T) {
	s := &scan.Scan{Rows: 3, Cols: 5, Pixels: make([]int, 15)}
	s.Pixels[0] = 1 // keep the image non-constant
	img, err := scan.Normalize(s)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 3 {
		t.Errorf("bounds = %v, want 5x3", img.Bounds())
	}
}
