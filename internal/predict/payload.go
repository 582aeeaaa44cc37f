package predict

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/png"

	"github.com/nfnt/resize"
)

// payloadSize is the square input dimension the classifier was
// trained on.
const payloadSize = 224

// EncodePayload prepares an image for the model service: resize to
// 224x224, encode as PNG, wrap in base64.
func EncodePayload(img image.Image) (string, error) {
	if img == nil {
		return "", &EncodeError{Err: errors.New("nil image")}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return "", &EncodeError{Err: errors.New("empty image")}
	}

	resized := resize.Resize(payloadSize, payloadSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return "", &EncodeError{Err: err}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
