// Package scantest builds minimal in-memory DICOM files for tests: a
// 128-byte preamble, the DICM magic, an explicit VR little endian meta group
// and a 16-bit monochrome pixel matrix.
package scantest

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	explicitVRLittleEndian = "1.2.840.10008.1.2.1"
	ctImageStorage         = "1.2.840.10008.5.1.4.1.1.2"
	instanceUID            = "1.2.826.0.1.3680043.9.7133.1.1"
)

// File serializes a single-frame DICOM file holding the given pixel matrix.
// len(pixels) must equal rows*cols.
func File(rows, cols int, pixels []uint16) []byte {
	return MultiFrame(rows, cols, pixels)
}

// MultiFrame serializes a DICOM file with one or more frames of identical
// shape. Every frame must hold rows*cols pixels.
func MultiFrame(rows, cols int, frames ...[]uint16) []byte {
	if len(frames) == 0 {
		panic("scantest: at least one frame required")
	}
	for i, f := range frames {
		if len(f) != rows*cols {
			panic(fmt.Sprintf("scantest: frame %d holds %d pixels, want %dx%d", i, len(f), rows, cols))
		}
	}

	var meta bytes.Buffer
	writeElement(&meta, 0x0002, 0x0001, "OB", []byte{0x00, 0x01})
	writeStringElement(&meta, 0x0002, 0x0002, "UI", ctImageStorage)
	writeStringElement(&meta, 0x0002, 0x0003, "UI", instanceUID)
	writeStringElement(&meta, 0x0002, 0x0010, "UI", explicitVRLittleEndian)

	var buf bytes.Buffer
	buf.Write(make([]byte, 128))
	buf.WriteString("DICM")
	writeElement(&buf, 0x0002, 0x0000, "UL", uint32LE(uint32(meta.Len())))
	buf.Write(meta.Bytes())

	writeStringElement(&buf, 0x0008, 0x0020, "DA", "20240102")
	writeStringElement(&buf, 0x0008, 0x0060, "CS", "CT")
	writeShortElement(&buf, 0x0028, 0x0002, 1) // SamplesPerPixel
	writeStringElement(&buf, 0x0028, 0x0004, "CS", "MONOCHROME2")
	if len(frames) > 1 {
		writeStringElement(&buf, 0x0028, 0x0008, "IS", fmt.Sprintf("%d", len(frames)))
	}
	writeShortElement(&buf, 0x0028, 0x0010, uint16(rows))
	writeShortElement(&buf, 0x0028, 0x0011, uint16(cols))
	writeShortElement(&buf, 0x0028, 0x0100, 16) // BitsAllocated
	writeShortElement(&buf, 0x0028, 0x0101, 16) // BitsStored
	writeShortElement(&buf, 0x0028, 0x0102, 15) // HighBit
	writeShortElement(&buf, 0x0028, 0x0103, 0)  // PixelRepresentation

	pix := make([]byte, 0, 2*rows*cols*len(frames))
	for _, f := range frames {
		for _, v := range f {
			pix = binary.LittleEndian.AppendUint16(pix, v)
		}
	}
	writeElement(&buf, 0x7FE0, 0x0010, "OW", pix)

	return buf.Bytes()
}

// Gradient returns a rows*cols ramp covering distinct intensities, handy for
// normalization round-trips.
func Gradient(rows, cols int) []uint16 {
	pixels := make([]uint16, rows*cols)
	for i := range pixels {
		pixels[i] = uint16(i % 4096)
	}
	return pixels
}

// Constant returns a rows*cols matrix where every pixel holds v.
func Constant(rows, cols int, v uint16) []uint16 {
	pixels := make([]uint16, rows*cols)
	for i := range pixels {
		pixels[i] = v
	}
	return pixels
}

func writeElement(b *bytes.Buffer, group, element uint16, vr string, value []byte) {
	var tag [4]byte
	binary.LittleEndian.PutUint16(tag[0:], group)
	binary.LittleEndian.PutUint16(tag[2:], element)
	b.Write(tag[:])
	b.WriteString(vr)
	switch vr {
	case "OB", "OW", "OF", "SQ", "UN", "UT":
		b.Write([]byte{0x00, 0x00})
		var l [4]byte
		binary.LittleEndian.PutUint32(l[:], uint32(len(value)))
		b.Write(l[:])
	default:
		var l [2]byte
		binary.LittleEndian.PutUint16(l[:], uint16(len(value)))
		b.Write(l[:])
	}
	b.Write(value)
}

// writeStringElement pads odd-length values to the even length the format
// requires: UIDs with a NUL, text with a space.
func writeStringElement(b *bytes.Buffer, group, element uint16, vr, s string) {
	value := []byte(s)
	if len(value)%2 == 1 {
		pad := byte(' ')
		if vr == "UI" {
			pad = 0x00
		}
		value = append(value, pad)
	}
	writeElement(b, group, element, vr, value)
}

func writeShortElement(b *bytes.Buffer, group, element uint16, v uint16) {
	var value [2]byte
	binary.LittleEndian.PutUint16(value[:], v)
	writeElement(b, group, element, "US", value[:])
}

func uint32LE(v uint32) []byte {
	var out [4]byte
	binary.LittleEndian.PutUint32(out[:], v)
	return out[:]
}
