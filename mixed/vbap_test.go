package mixed

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestVBAPPairwiseGainsSumToUnitPower(t *testing.T) {
	speakers := []r3.Vector{
		{X: -1, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
	}
	v, err := NewVBAP(speakers, 2)
	assert.NoError(t, err)

	_, gains, err := v.ComputeGains(r3.Vector{X: 0, Y: 0, Z: 1})
	assert.NoError(t, err)
	sumSq := float32(0)
	for _, g := range gains {
		sumSq += g * g
	}
	assert.InDelta(t, 1.0, sumSq, 1e-3)
}

func TestVBAPDirectionTowardASpeakerFavorsThatSpeaker(t *testing.T) {
	speakers := []r3.Vector{
		{X: -1, Y: 0, Z: 1},
		{X: 1, Y: 0, Z: 1},
	}
	v, err := NewVBAP(speakers, 2)
	assert.NoError(t, err)

	indices, gains, err := v.ComputeGains(r3.Vector{X: -1, Y: 0, Z: 1})
	assert.NoError(t, err)
	for i, idx := range indices {
		if idx == 0 {
			assert.Greater(t, gains[i], float32(0.9))
		}
	}
}

func TestVBAPRejectsInvalidDims(t *testing.T) {
	_, err := NewVBAP([]r3.Vector{{}, {}}, 4)
	assert.Error(t, err)
}

func TestVBAPFromChannelCountBuildsStereoPanner(t *testing.T) {
	v, err := NewVBAPFromChannelCount(2)
	assert.NoError(t, err)
	assert.Equal(t, 2, v.SpeakerCount())
}

func TestVBAPRequiresEnoughSpeakersForDims(t *testing.T) {
	_, err := NewVBAP([]r3.Vector{{X: 1, Y: 0, Z: 0}}, 2)
	assert.Error(t, err)
}
