package mixed

import "github.com/golang/geo/r3"

// defaultSpeakerPositions gives a reasonable default 3D placement for
// each named Location, in the same relative units (not physical
// meters) as the rest of the space/plane/VBAP geometry.
var defaultSpeakerPositions = map[Location]r3.Vector{
	LocationLeft:               {X: -2, Y: 0, Z: 1},
	LocationRight:              {X: 2, Y: 0, Z: 1},
	LocationCenter:             {X: 0, Y: 0, Z: 1},
	LocationLFE:                {X: 0, Y: 0, Z: 0},
	LocationSubwoofer:          {X: 0, Y: 0, Z: 0},
	LocationRearLeft:           {X: -2, Y: 0, Z: -1},
	LocationRearRight:          {X: 2, Y: 0, Z: -1},
	LocationRearCenter:         {X: 0, Y: 0, Z: -1},
	LocationSideLeft:           {X: -2, Y: 0, Z: 0},
	LocationSideRight:          {X: 2, Y: 0, Z: 0},
	LocationFrontLeftOfCenter:  {X: 4, Y: 0, Z: 4},
	LocationFrontRightOfCenter: {X: -4, Y: 0, Z: 4},
	LocationTopCenter:          {X: 0, Y: 1, Z: 0},
	LocationMono:               {X: -2, Y: 0, Z: 1},
}

// DefaultSpeakerPosition returns the canonical placement for a named
// speaker Location, for use when seeding a VBAP or space/plane mixer
// layout without explicit coordinates.
func DefaultSpeakerPosition(location Location) (r3.Vector, error) {
	pos, ok := defaultSpeakerPositions[location]
	if !ok {
		return r3.Vector{}, newErr("DefaultSpeakerPosition", KindInvalidLocation, "location %v", location)
	}
	return pos, nil
}

// defaultChannelConfigurations maps a channel count to the ordered
// list of speaker Locations a standard layout of that size uses.
// Exotic >7.1 layouts with front-top speakers are not represented
// since this table has no Location for them.
var defaultChannelConfigurations = map[int][]Location{
	0: {},
	1: {LocationMono},
	2: {LocationLeft, LocationRight},
	3: {LocationLeft, LocationRight, LocationCenter},
	4: {LocationLeft, LocationRight, LocationRearLeft, LocationRearRight},
	5: {LocationLeft, LocationRight, LocationCenter, LocationRearLeft, LocationRearRight},
	6: {LocationLeft, LocationRight, LocationCenter, LocationSubwoofer, LocationRearLeft, LocationRearRight},
	7: {LocationLeft, LocationRight, LocationCenter, LocationSubwoofer, LocationRearCenter, LocationSideLeft, LocationSideRight},
	8: {LocationLeft, LocationRight, LocationCenter, LocationSubwoofer, LocationRearLeft, LocationRearRight, LocationSideLeft, LocationSideRight},
}

// DefaultChannelConfiguration returns the standard speaker layout for
// a given channel count (e.g. 6 for 5.1 surround).
func DefaultChannelConfiguration(channels int) ([]Location, error) {
	cfg, ok := defaultChannelConfigurations[channels]
	if !ok {
		return nil, newErr("DefaultChannelConfiguration", KindInvalidValue, "no default layout for %d channels", channels)
	}
	return cfg, nil
}
