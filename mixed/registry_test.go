package mixed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndMakeSegment(t *testing.T) {
	name := "test-registry-gate"
	assert.NoError(t, RegisterSegment(name, func(args any) (Processor, error) {
		rate, _ := args.(int)
		return NewGate(rate), nil
	}))
	defer DeregisterSegment(name)

	assert.Contains(t, ListSegments(), name)

	p, err := MakeSegment(name, 44100)
	assert.NoError(t, err)
	assert.IsType(t, &Gate{}, p)
}

func TestRegisterDuplicateSegmentErrors(t *testing.T) {
	name := "test-registry-duplicate"
	assert.NoError(t, RegisterSegment(name, func(args any) (Processor, error) { return nil, nil }))
	defer DeregisterSegment(name)

	assert.Error(t, RegisterSegment(name, func(args any) (Processor, error) { return nil, nil }))
}

func TestMakeUnknownSegmentErrors(t *testing.T) {
	_, err := MakeSegment("does-not-exist", nil)
	assert.Error(t, err)
}

func TestDeregisterUnknownSegmentErrors(t *testing.T) {
	assert.Error(t, DeregisterSegment("also-does-not-exist"))
}

func TestLoadPluginRejectsMissingFile(t *testing.T) {
	assert.Error(t, LoadPlugin("/nonexistent/path/to/plugin.so"))
}

func TestClosePluginRejectsUnloaded(t *testing.T) {
	assert.Error(t, ClosePlugin("/nonexistent/path/to/plugin.so"))
}
