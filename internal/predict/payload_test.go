package predict_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/m-a-mohsen/brainct-analyzer/internal/predict"
	"github.com/m-a-mohsen/brainct-analyzer/internal/scan"
	"github.com/m-a-mohsen/brainct-analyzer/internal/scan/scantest"
)

func decodePayload(t *testing.T, payload string) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("payload is not valid PNG: %v", err)
	}
	return img
}

func TestEncodePayload(t *testing.T) {
	sizes := []image.Rectangle{
		image.Rect(0, 0, 512, 512),
		image.Rect(0, 0, 100, 37),
		image.Rect(0, 0, 224, 224),
		image.Rect(0, 0, 1, 1),
	}
	for _, r := range sizes {
		src := image.NewGray(r)
		for i := range src.Pix {
			src.Pix[i] = uint8(i % 251)
		}

		payload, err := predict.EncodePayload(src)
		if err != nil {
			t.Fatalf("EncodePayload(%v): %v", r, err)
		}
		img := decodePayload(t, payload)
		if img.Bounds().Dx() != 224 || img.Bounds().Dy() != 224 {
			t.Errorf("EncodePayload(%v): decoded bounds %v, want 224x224", r, img.Bounds())
		}
	}
}

func TestEncodePayloadFromScan(t *testing.T) {
	data := scantest.File(32, 32, scantest.Gradient(32, 32))
	s, err := scan.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	gray, err := scan.Normalize(s)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	payload, err := predict.EncodePayload(gray)
	if err != nil {
		t.Fatalf("EncodePayload: %v", err)
	}
	img := decodePayload(t, payload)
	if img.Bounds().Dx() != 224 || img.Bounds().Dy() != 224 {
		t.Errorf("decoded bounds %v, want 224x224", img.Bounds())
	}
}

func TestEncodePayloadRejectsUnusableImages(t *testing.T) {
	var ee *predict.EncodeError
	if _, err := predict.EncodePayload(nil); !errors.As(err, &ee) {
		t.Errorf("EncodePayload(nil) = %v, want *EncodeError", err)
	}
	if _, err := predict.EncodePayload(image.NewGray(image.Rect(0, 0, 0, 0))); !errors.As(err, &ee) {
		t.Errorf("EncodePayload(empty) = %v, want *EncodeError", err)
	}
}
