// Command mixtone generates a waveform through a generator->fade
// chain and writes raw interleaved stereo float32 samples to stdout.
package main

import (
	"bufio"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/libmixed/gomixed/mixed"
)

func waveType(name string) (mixed.GeneratorType, bool) {
	switch name {
	case "sine":
		return mixed.GeneratorSine, true
	case "square":
		return mixed.GeneratorSquare, true
	case "triangle":
		return mixed.GeneratorTriangle, true
	case "sawtooth":
		return mixed.GeneratorSawtooth, true
	default:
		return 0, false
	}
}

func main() {
	wave := pflag.StringP("wave", "w", "sine", "Wave type: sine, square, triangle, sawtooth.")
	frequency := pflag.IntP("frequency", "f", 440, "Tone frequency in Hz.")
	duration := pflag.Float32P("duration", "d", 2.0, "Duration in seconds.")
	samplerate := pflag.IntP("samplerate", "r", 44100, "Samplerate in Hz.")
	fadeTime := pflag.Float32P("fade", "t", 0.05, "Fade-in time in seconds.")
	pflag.Parse()

	t, ok := waveType(*wave)
	if !ok {
		log.Fatal("invalid wave type", "wave", *wave)
	}

	samples := int(float32(*samplerate) * *duration)
	mono := mixed.NewBuffer(samples)
	faded := mixed.NewBuffer(samples)
	left := mixed.NewBuffer(samples)
	right := mixed.NewBuffer(samples)

	generator := mixed.NewGenerator(t, *frequency, *samplerate)
	fade := mixed.NewFade(*samplerate)
	fade.To = 0.8
	fade.Time = *fadeTime

	chain := mixed.NewChain()
	chain.Add(generator)
	chain.Add(fade)

	if err := generator.SetOut(int(mixed.LocationMono), mono); err != nil {
		log.Fatal("wiring generator output", "err", err)
	}
	if err := fade.SetIn(int(mixed.LocationMono), mono); err != nil {
		log.Fatal("wiring fade input", "err", err)
	}
	if err := fade.SetOut(int(mixed.LocationMono), faded); err != nil {
		log.Fatal("wiring fade output", "err", err)
	}

	if err := chain.Start(); err != nil {
		log.Fatal("starting chain", "err", err)
	}
	if err := chain.Mix(samples); err != nil {
		log.Fatal("mixing", "err", err)
	}
	if err := chain.End(); err != nil {
		log.Fatal("ending chain", "err", err)
	}

	// Mono source duplicated to both channels: no channel-convert
	// segment exists in this library, so stereo fan-out happens here
	// at the demo level, reading the mono result once and writing it
	// to both destination buffers.
	monoOut := faded.RequestRead(samples)
	copy(left.RequestWrite(len(monoOut)), monoOut)
	copy(right.RequestWrite(len(monoOut)), monoOut)
	faded.FinishRead(len(monoOut))
	left.FinishWrite(len(monoOut))
	right.FinishWrite(len(monoOut))

	pack, err := mixed.NewPack(mixed.EncodingFloat32, 2, *samplerate, samples)
	if err != nil {
		log.Fatal("creating output pack", "err", err)
	}

	n := mixed.BufferToPack([]*mixed.Buffer{left, right}, nil, pack, samples)
	log.Info("generated tone", "wave", *wave, "frequency", *frequency, "samplerate", *samplerate, "frames", n)

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	raw := make([]byte, pack.AvailableFrames()*2*mixed.EncodingFloat32.BytesPerSample())
	got := pack.Read(raw)
	if _, err := w.Write(raw[:got]); err != nil {
		log.Fatal("writing to stdout", "err", err)
	}
}
