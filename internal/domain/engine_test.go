package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandForCapacity_Boundaries(t *testing.T) {
	tests := []struct {
		cc   int
		want EngineSizeBand
	}{
		{0, BandUpTo1200},
		{1, BandUpTo1200},
		{1200, BandUpTo1200},
		{1201, Band1201To1500},
		{1400, Band1201To1500},
		{1500, Band1201To1500},
		{1501, Band1501To2000},
		{2000, Band1501To2000},
		{2001, Band2001To2400},
		{2400, Band2001To2400},
		{2401, Band2401To3500},
		{3500, Band2401To3500},
		{3501, BandAbove3500},
		{100000, BandAbove3500},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, BandForCapacity(tt.cc), "cc=%d", tt.cc)
	}
}

func TestAllBands_Order(t *testing.T) {
	assert.Len(t, AllBands, 6)
	assert.Equal(t, BandUpTo1200, AllBands[0])
	assert.Equal(t, BandAbove3500, AllBands[5])
}
