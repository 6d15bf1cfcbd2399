// Package raster packages a dense float32 terrain band into a
// self-describing byte blob a host can persist and hand back for a later
// pass, and parses such a blob back into a typed array.
//
// The wire format is a purpose-built binary layout rather than GeoTIFF:
// the host already owns blob storage and transport, so a general-purpose
// container format would just add a dependency without buying anything.
// Hosts wanting GeoTIFF wrap this codec.
package raster

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/justmytwospence/firsttracks-terrain/geo"
)

// Kind identifies which terrain band a blob carries.
type Kind uint8

// Closed enumeration of band kinds.
const (
	KindAzimuth Kind = iota
	KindGradient
	KindRunout
	KindElevation
)

func (k Kind) String() string {
	switch k {
	case KindAzimuth:
		return "azimuth"
	case KindGradient:
		return "gradient"
	case KindRunout:
		return "runout"
	case KindElevation:
		return "elevation"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// magic identifies the blob format; version allows the header to evolve.
const (
	magic         uint32 = 0x46545243 // "FTRC": firsttracks raster codec
	version       uint8  = 1
	headerBytes          = 4 + 1 + 1 + 4 + 4 + 4*8 // magic,version,kind,width,height,bounds
)

// Band is a dense terrain raster plus the kind/georeferencing needed to
// interpret it.
type Band struct {
	Kind          Kind
	Width, Height int
	Bounds        geo.Bounds
	Values        []float32
}

// Encode packages b into the wire format:
//
//	4-byte magic, 1-byte version, 1-byte kind, 4-byte width, 4-byte
//	height, 4x8-byte bounds (N,S,E,W as float64), width*height*4
//	little-endian float32 values.
func Encode(b Band) ([]byte, error) {
	if b.Width <= 0 || b.Height <= 0 {
		return nil, fmt.Errorf("raster: width and height must be positive, got %dx%d", b.Width, b.Height)
	}
	if b.Width*b.Height != len(b.Values) {
		return nil, fmt.Errorf("raster: width*height=%d does not match len(values)=%d", b.Width*b.Height, len(b.Values))
	}

	out := make([]byte, headerBytes+len(b.Values)*4)
	off := 0
	binary.LittleEndian.PutUint32(out[off:], magic)
	off += 4
	out[off] = version
	off++
	out[off] = byte(b.Kind)
	off++
	binary.LittleEndian.PutUint32(out[off:], uint32(b.Width))
	off += 4
	binary.LittleEndian.PutUint32(out[off:], uint32(b.Height))
	off += 4
	for _, v := range []float64{b.Bounds.North, b.Bounds.South, b.Bounds.East, b.Bounds.West} {
		binary.LittleEndian.PutUint64(out[off:], math.Float64bits(v))
		off += 8
	}
	for _, v := range b.Values {
		binary.LittleEndian.PutUint32(out[off:], math.Float32bits(v))
		off += 4
	}
	return out, nil
}

// Decode parses a blob produced by Encode, rejecting on magic, version or
// size mismatch.
func Decode(data []byte) (Band, error) {
	if len(data) < headerBytes {
		return Band{}, fmt.Errorf("raster: blob too short for header: %d bytes", len(data))
	}
	off := 0
	if got := binary.LittleEndian.Uint32(data[off:]); got != magic {
		return Band{}, fmt.Errorf("raster: bad magic 0x%x", got)
	}
	off += 4
	if got := data[off]; got != version {
		return Band{}, fmt.Errorf("raster: unsupported version %d", got)
	}
	off++
	kind := Kind(data[off])
	off++
	width := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4
	height := int(binary.LittleEndian.Uint32(data[off:]))
	off += 4

	bounds := geo.Bounds{}
	fields := [4]*float64{&bounds.North, &bounds.South, &bounds.East, &bounds.West}
	for _, f := range fields {
		*f = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}

	if width <= 0 || height <= 0 {
		return Band{}, fmt.Errorf("raster: non-positive dimensions %dx%d", width, height)
	}
	wantLen := headerBytes + width*height*4
	if len(data) != wantLen {
		return Band{}, fmt.Errorf("raster: expected %d bytes, got %d", wantLen, len(data))
	}

	values := make([]float32, width*height)
	for i := range values {
		values[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
		off += 4
	}

	return Band{Kind: kind, Width: width, Height: height, Bounds: bounds, Values: values}, nil
}
