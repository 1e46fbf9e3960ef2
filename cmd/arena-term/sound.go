package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// chime plays short sine tones for match events.
type chime struct {
	ready bool
}

// Init opens the speaker.
func (c *chime) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	c.ready = true
	return nil
}

// Play sounds a tone of freq Hz for d.
func (c *chime) Play(freq float64, d time.Duration) {
	if !c.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

// Close releases the speaker.
func (c *chime) Close() {
	if c.ready {
		speaker.Close()
		c.ready = false
	}
}
