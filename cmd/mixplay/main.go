// Command mixplay plays a live-generated, filtered tone through the
// default audio output device using PortAudio.
package main

import (
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
	"github.com/spf13/pflag"

	"github.com/libmixed/gomixed/mixed"
)

const framesPerBuffer = 512

func main() {
	frequency := pflag.IntP("frequency", "f", 440, "Tone frequency in Hz.")
	cutoff := pflag.IntP("cutoff", "c", 4000, "Lowpass filter cutoff in Hz.")
	samplerate := pflag.IntP("samplerate", "r", 44100, "Samplerate in Hz.")
	pflag.Parse()

	generator := mixed.NewGenerator(mixed.GeneratorSine, *frequency, *samplerate)
	filter := mixed.NewBiquad(mixed.BiquadLowpass, *samplerate, float32(*cutoff), 0.707, 0)
	fade := mixed.NewFade(*samplerate)
	fade.To = 0.6
	fade.Time = 0.25

	raw := mixed.NewBuffer(framesPerBuffer)
	filtered := mixed.NewBuffer(framesPerBuffer)
	faded := mixed.NewBuffer(framesPerBuffer)

	chain := mixed.NewChain()
	chain.Add(generator)
	chain.Add(filter)
	chain.Add(fade)

	mustWire := func(err error) {
		if err != nil {
			log.Fatal("wiring pipeline", "err", err)
		}
	}
	mustWire(generator.SetOut(int(mixed.LocationMono), raw))
	mustWire(filter.SetIn(0, raw))
	mustWire(filter.SetOut(0, filtered))
	mustWire(fade.SetIn(0, filtered))
	mustWire(fade.SetOut(0, faded))

	if err := chain.Start(); err != nil {
		log.Fatal("starting chain", "err", err)
	}
	defer chain.End()

	if err := portaudio.Initialize(); err != nil {
		log.Fatal("initializing portaudio", "err", err)
	}
	defer portaudio.Terminate()

	callback := func(out []float32) {
		if err := chain.Mix(framesPerBuffer); err != nil {
			log.Error("mix tick failed", "err", err)
			for i := range out {
				out[i] = 0
			}
			return
		}
		mono := faded.RequestRead(framesPerBuffer)
		n := len(mono)
		for i := 0; i < n; i++ {
			out[2*i] = mono[i]
			out[2*i+1] = mono[i]
		}
		for i := n * 2; i < len(out); i++ {
			out[i] = 0
		}
		faded.FinishRead(n)
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, float64(*samplerate), framesPerBuffer, callback)
	if err != nil {
		log.Fatal("opening output stream", "err", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		log.Fatal("starting stream", "err", err)
	}
	defer stream.Stop()

	log.Info("playing tone, press ctrl-c to stop", "frequency", *frequency, "cutoff", *cutoff, "samplerate", *samplerate)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
}
