package raster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/raster"
)

func sampleBand(kind raster.Kind) raster.Band {
	return raster.Band{
		Kind:   kind,
		Width:  3,
		Height: 2,
		Bounds: geo.Bounds{North: 1, South: 0, East: 1, West: 0},
		Values: []float32{0, 1, 2, 3, 4, 5},
	}
}

func TestEncodeDecodeRoundTripAllKinds(t *testing.T) {
	for _, kind := range []raster.Kind{raster.KindAzimuth, raster.KindGradient, raster.KindRunout, raster.KindElevation} {
		blob, err := raster.Encode(sampleBand(kind))
		require.NoError(t, err)

		got, err := raster.Decode(blob)
		require.NoError(t, err)
		assert.Equal(t, sampleBand(kind), got)
	}
}

func TestDecodeRejectsBadMagic(t *testing.T) {
	blob, err := raster.Encode(sampleBand(raster.KindElevation))
	require.NoError(t, err)
	blob[0] ^= 0xff

	_, err = raster.Decode(blob)
	require.Error(t, err)
}

func TestDecodeRejectsBadVersion(t *testing.T) {
	blob, err := raster.Encode(sampleBand(raster.KindElevation))
	require.NoError(t, err)
	blob[4] = 0xff

	_, err = raster.Decode(blob)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedPayload(t *testing.T) {
	blob, err := raster.Encode(sampleBand(raster.KindElevation))
	require.NoError(t, err)

	_, err = raster.Decode(blob[:len(blob)-4])
	require.Error(t, err)
}

func TestEncodeRejectsSizeMismatch(t *testing.T) {
	b := sampleBand(raster.KindElevation)
	b.Values = b.Values[:len(b.Values)-1]
	_, err := raster.Encode(b)
	require.Error(t, err)
}
