package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
	blipFreq   = 880.0
	blipLength = 50 * time.Millisecond
)

// Player produces the short blips accompanying cell activations. A
// disabled or failed player is a silent no-op; the animation never
// depends on audio being available.
type Player struct {
	enabled bool
}

// NewPlayer initializes the speaker when enable is set. An
// initialization failure is reported but leaves a usable, silent
// player behind.
func NewPlayer(enable bool) (*Player, error) {
	p := &Player{}
	if !enable {
		return p, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return p, err
	}
	p.enabled = true
	return p, nil
}

// Enabled reports whether the speaker is live
func (p *Player) Enabled() bool {
	return p.enabled
}

// Blip plays a short sine tone
func (p *Player) Blip() {
	if !p.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, blipFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(blipLength), sine))
}

// Close releases the speaker
func (p *Player) Close() {
	if p.enabled {
		speaker.Close()
		p.enabled = false
	}
}
