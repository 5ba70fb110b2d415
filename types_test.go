package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkullRoundTrip(t *testing.T) {
	for _, ch := range []byte("LVAPRGH-") {
		s, err := parseSkull(ch)
		require.NoError(t, err)
		assert.Equal(t, ch, skullChar(s))
	}
}

func TestParseSkullUnknown(t *testing.T) {
	_, err := parseSkull('X')
	assert.ErrorIs(t, err, ErrUnknownSkull)
}

func TestNewCard(t *testing.T) {
	c, err := NewCard("AH", 7)
	require.NoError(t, err)
	assert.Equal(t, Card{Bottom: SkullAssassin, Top: SkullHangman, ID: 7}, c)
	assert.Equal(t, "AH", c.Faces())

	_, err = NewCard("AHH", 0)
	assert.Error(t, err)

	_, err = NewCard("AZ", 0)
	assert.ErrorIs(t, err, ErrUnknownSkull)
}

func TestNewPyramid(t *testing.T) {
	tests := []struct {
		name     string
		base     int
		height   int
		wantSize int
		wantErr  error
	}{
		{name: "single card", base: 1, height: 1, wantSize: 1},
		{name: "full 3x3", base: 3, height: 3, wantSize: 6},
		{name: "flat top", base: 4, height: 2, wantSize: 7},
		{name: "largest", base: 10, height: 10, wantSize: 55},
		{name: "zero base", base: 0, height: 1, wantErr: ErrPyramidBounds},
		{name: "base too wide", base: 11, height: 1, wantErr: ErrPyramidBounds},
		{name: "zero height", base: 3, height: 0, wantErr: ErrPyramidBounds},
		{name: "taller than base", base: 3, height: 4, wantErr: ErrPyramidBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPyramid(tt.base, tt.height)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, p.Size)
		})
	}
}

func TestPyramidFits(t *testing.T) {
	p, err := NewPyramid(3, 3)
	require.NoError(t, err)

	assert.NoError(t, p.Fits(6))
	assert.NoError(t, p.Fits(30))
	assert.ErrorIs(t, p.Fits(5), ErrPyramidTooLarge)
}
