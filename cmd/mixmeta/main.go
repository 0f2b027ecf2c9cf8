// Command mixmeta introspects the segment registry: with no
// arguments it lists every registered segment name; given a name it
// prints that segment's Info (description and field table).
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/libmixed/gomixed/mixed"
)

// registerBuiltinSegments wires the library's own processors into the
// registry so mixmeta has something to introspect without a dynamically
// loaded plugin. A real deployment would instead rely on each plugin's
// MixedMakePlugin to call mixed.RegisterSegment for itself.
func registerBuiltinSegments() {
	builtins := map[string]mixed.SegmentFactory{
		"generator": func(args any) (mixed.Processor, error) {
			return mixed.NewGenerator(mixed.GeneratorSine, 440, 44100), nil
		},
		"noise": func(args any) (mixed.Processor, error) {
			return mixed.NewNoise(mixed.NoiseWhite), nil
		},
		"biquad": func(args any) (mixed.Processor, error) {
			return mixed.NewBiquad(mixed.BiquadLowpass, 44100, 1000, 0.707, 0), nil
		},
		"gate": func(args any) (mixed.Processor, error) {
			return mixed.NewGate(44100), nil
		},
		"compressor": func(args any) (mixed.Processor, error) {
			return mixed.NewCompressor(44100), nil
		},
		"equalizer": func(args any) (mixed.Processor, error) {
			return mixed.NewEqualizer(44100), nil
		},
		"space": func(args any) (mixed.Processor, error) {
			return mixed.NewSpace(), nil
		},
		"plane": func(args any) (mixed.Processor, error) {
			return mixed.NewPlane(), nil
		},
		"chain": func(args any) (mixed.Processor, error) {
			return mixed.NewChain(), nil
		},
	}
	for name, factory := range builtins {
		if err := mixed.RegisterSegment(name, factory); err != nil {
			log.Warn("could not register builtin segment", "name", name, "err", err)
		}
	}
}

func printInfo(info mixed.Info) {
	fmt.Printf("Name:        %s\n", info.Name)
	fmt.Printf("Description: %s\n", info.Description)
	fmt.Printf("Fields:\n")
	for _, f := range info.Fields {
		gettable, settable := " ", " "
		if f.Flags&mixed.FieldGettable != 0 {
			gettable = "G"
		}
		if f.Flags&mixed.FieldSettable != 0 {
			settable = "S"
		}
		fmt.Printf("- %-24s %s%s  %s\n", f.Name, gettable, settable, f.Description)
	}
}

func main() {
	registerBuiltinSegments()

	if len(os.Args) < 2 {
		fmt.Println("Known segments:")
		for _, name := range mixed.ListSegments() {
			fmt.Printf("- %s\n", name)
		}
		return
	}

	name := os.Args[1]
	p, err := mixed.MakeSegment(name, nil)
	if err != nil {
		log.Fatal("could not create segment", "name", name, "err", err)
	}
	printInfo(p.Info())
}
