package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSpeakerPositionKnownLocation(t *testing.T) {
	pos, err := DefaultSpeakerPosition(LocationCenter)
	assert.NoError(t, err)
	assert.Equal(t, 1.0, pos.Z)
}

func TestDefaultSpeakerPositionUnknownLocationErrors(t *testing.T) {
	_, err := DefaultSpeakerPosition(Location(999))
	assert.Error(t, err)
}

func TestDefaultChannelConfigurationStereo(t *testing.T) {
	cfg, err := DefaultChannelConfiguration(2)
	assert.NoError(t, err)
	assert.Equal(t, []Location{LocationLeft, LocationRight}, cfg)
}

func TestDefaultChannelConfigurationSurround51(t *testing.T) {
	cfg, err := DefaultChannelConfiguration(6)
	assert.NoError(t, err)
	assert.Contains(t, cfg, LocationSubwoofer)
	assert.Len(t, cfg, 6)
}

func TestDefaultChannelConfigurationUnknownErrors(t *testing.T) {
	_, err := DefaultChannelConfiguration(42)
	assert.Error(t, err)
}
