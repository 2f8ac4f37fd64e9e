// Package assets holds the sounds the front-end plays for level cues.
package assets

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sampleRate = 44100

type Sound int

const (
	SoundFire Sound = iota
	SoundExit
	SoundOverheat
)

// Mixer plays short synthesized clips. A nil Mixer is silent.
type Mixer struct {
	ctx    *audio.Context
	clips  map[Sound][]byte
	volume float64
}

func NewMixer(volume float64) *Mixer {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Mixer{
		ctx:    ctx,
		volume: volume,
		clips: map[Sound][]byte{
			SoundFire:     Tone(880, 40*time.Millisecond, 0.3),
			SoundExit:     append(Tone(523, 120*time.Millisecond, 0.4), Tone(784, 240*time.Millisecond, 0.4)...),
			SoundOverheat: Tone(110, 200*time.Millisecond, 0.4),
		},
	}
}

func (m *Mixer) Play(s Sound) {
	if m == nil {
		return
	}
	clip, ok := m.clips[s]
	if !ok {
		return
	}
	p := m.ctx.NewPlayerFromBytes(clip)
	p.SetVolume(m.volume)
	p.Play()
}

// Tone renders a square wave as 16 bit little endian stereo PCM, the format
// NewPlayerFromBytes expects. The last few milliseconds fade out to avoid a
// click.
func Tone(freq float64, d time.Duration, volume float64) []byte {
	n := int(d.Seconds() * sampleRate)
	fade := min(n, sampleRate/200)
	out := make([]byte, n*4)
	for i := 0; i < n; i++ {
		v := volume
		if math.Sin(2*math.Pi*freq*float64(i)/sampleRate) < 0 {
			v = -v
		}
		if rest := n - i; rest < fade {
			v *= float64(rest) / float64(fade)
		}
		s := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(out[i*4:], s)
		binary.LittleEndian.PutUint16(out[i*4+2:], s)
	}
	return out
}
