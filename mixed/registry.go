package mixed

import (
	"plugin"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
)

// pluginLogTimeFormat controls the timestamp prefix on plugin
// load/close log lines, in strftime notation.
var pluginLogTimeFormat = "%Y-%m-%d %H:%M:%S"

func pluginLogTimestamp() string {
	ts, err := strftime.Format(pluginLogTimeFormat, time.Now())
	if err != nil {
		return ""
	}
	return ts
}

// SegmentFactory builds a configured Processor from an opaque args
// value, the same shape a dynamically loaded segment plugin provides.
type SegmentFactory func(args any) (Processor, error)

type segmentEntry struct {
	name    string
	factory SegmentFactory
}

var (
	registryMutex sync.Mutex
	segments      []segmentEntry
	loadedPlugins = map[string]*plugin.Plugin{}
)

// RegisterSegment adds a named segment factory to the process-wide
// registry. Re-registering an existing name is an error, matching the
// reference library's duplicate-segment rejection.
func RegisterSegment(name string, factory SegmentFactory) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	for _, e := range segments {
		if e.name == name {
			return newErr("RegisterSegment", KindDuplicateSegment, "segment %q is already registered", name)
		}
	}
	segments = append(segments, segmentEntry{name: name, factory: factory})
	return nil
}

// DeregisterSegment removes a previously registered segment factory.
func DeregisterSegment(name string) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	for i, e := range segments {
		if e.name == name {
			segments = append(segments[:i], segments[i+1:]...)
			return nil
		}
	}
	return newErr("DeregisterSegment", KindUnknownSegment, "segment %q is not registered", name)
}

// ListSegments returns the names of all currently registered segment
// factories.
func ListSegments() []string {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	names := make([]string, len(segments))
	for i, e := range segments {
		names[i] = e.name
	}
	return names
}

// MakeSegment constructs a Processor by looking up a registered
// factory by name and invoking it with args.
func MakeSegment(name string, args any) (Processor, error) {
	registryMutex.Lock()
	factory := (SegmentFactory)(nil)
	for _, e := range segments {
		if e.name == name {
			factory = e.factory
			break
		}
	}
	registryMutex.Unlock()

	if factory == nil {
		return nil, newErr("MakeSegment", KindUnknownSegment, "no segment registered as %q", name)
	}
	return factory(args)
}

// pluginRegisterFunc is the symbol a Go plugin must export: it is
// handed RegisterSegment so the plugin can add its own segment types
// to the host registry, mirroring the reference library's
// mixed_make_plugin(mixed_register_segment) callback handshake.
type pluginRegisterFunc func(register func(name string, factory SegmentFactory) error) error

// LoadPlugin opens a Go plugin (.so) by path and calls its exported
// MixedMakePlugin(register) function so it can register its own
// segment factories.
func LoadPlugin(path string) error {
	registryMutex.Lock()
	if _, ok := loadedPlugins[path]; ok {
		registryMutex.Unlock()
		return newErr("LoadPlugin", KindInvalidValue, "plugin %q is already loaded", path)
	}
	registryMutex.Unlock()

	p, err := plugin.Open(path)
	if err != nil {
		return newErr("LoadPlugin", KindMixingFailed, "opening plugin %q: %v", path, err)
	}
	sym, err := p.Lookup("MixedMakePlugin")
	if err != nil {
		return newErr("LoadPlugin", KindMixingFailed, "plugin %q has no MixedMakePlugin symbol: %v", path, err)
	}
	register, ok := sym.(pluginRegisterFunc)
	if !ok {
		fn, ok2 := sym.(func(func(string, SegmentFactory) error) error)
		if !ok2 {
			return newErr("LoadPlugin", KindMixingFailed, "plugin %q exports MixedMakePlugin with the wrong signature", path)
		}
		register = fn
	}
	if err := register(RegisterSegment); err != nil {
		return newErr("LoadPlugin", KindMixingFailed, "plugin %q registration failed: %v", path, err)
	}

	registryMutex.Lock()
	loadedPlugins[path] = p
	registryMutex.Unlock()
	log.Debug("plugin loaded", "path", path, "at", pluginLogTimestamp())
	return nil
}

// ClosePlugin marks a loaded plugin as closed. Go's plugin package
// has no unload primitive, so this only deregisters the bookkeeping
// entry; any segments it registered remain usable until the process
// exits, consistent with Go plugins being permanently resident once
// opened.
func ClosePlugin(path string) error {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if _, ok := loadedPlugins[path]; !ok {
		return newErr("ClosePlugin", KindInvalidValue, "plugin %q is not loaded", path)
	}
	delete(loadedPlugins, path)
	log.Debug("plugin closed", "path", path, "at", pluginLogTimestamp())
	return nil
}
