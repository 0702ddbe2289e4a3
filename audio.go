package festive

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Jingle defaults.
const (
	DefaultSampleRate    = 44100
	DefaultJingleVolume  = 0.35
	jingleBeatSeconds    = 0.3
	jingleAmplitude      = 0.25
	jingleAttackSeconds  = 0.01
	jingleDecayPerSecond = 3.0
)

// Note frequencies in Hz.
const (
	noteC5   = 523.25
	noteD5   = 587.33
	noteE5   = 659.25
	noteF5   = 698.46
	noteG5   = 783.99
	noteRest = 0
)

// jingleNote is one step of the melody: a frequency held for some beats.
type jingleNote struct {
	freq  float64
	beats float64
}

// jingleMelody is the chorus of "Jingle Bells".
var jingleMelody = []jingleNote{
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteE5, 1}, {noteE5, 2},
	{noteE5, 1}, {noteG5, 1}, {noteC5, 1.5}, {noteD5, 0.5}, {noteE5, 4},
	{noteF5, 1}, {noteF5, 1}, {noteF5, 1.5}, {noteF5, 0.5},
	{noteF5, 1}, {noteE5, 1}, {noteE5, 1}, {noteE5, 0.5}, {noteE5, 0.5},
	{noteE5, 1}, {noteD5, 1}, {noteD5, 1}, {noteE5, 1},
	{noteD5, 2}, {noteG5, 2},
	{noteRest, 2},
}

// Jingle is looping background music synthesized at startup.
type Jingle struct {
	player *audio.Player
	volume float64
	muted  bool
}

// NewJingle synthesizes the melody for ctx's sample rate and prepares an
// endlessly looping player. Call Play to start it.
func NewJingle(ctx *audio.Context) (*Jingle, error) {
	pcm := synthesizeJingle(ctx.SampleRate())
	loop := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := ctx.NewPlayer(loop)
	if err != nil {
		return nil, fmt.Errorf("festive: jingle player: %w", err)
	}
	p.SetVolume(DefaultJingleVolume)
	return &Jingle{player: p, volume: DefaultJingleVolume}, nil
}

// Play starts or resumes playback.
func (j *Jingle) Play() {
	if j.player != nil {
		j.player.Play()
	}
}

// Muted reports whether the jingle is muted.
func (j *Jingle) Muted() bool {
	return j.muted
}

// SetMuted silences or restores the jingle without stopping the loop.
func (j *Jingle) SetMuted(muted bool) {
	j.muted = muted
	if j.player == nil {
		return
	}
	if muted {
		j.player.SetVolume(0)
	} else {
		j.player.SetVolume(j.volume)
	}
}

// Close releases the player.
func (j *Jingle) Close() {
	if j.player == nil {
		return
	}
	if err := j.player.Close(); err != nil {
		logf("jingle: close: %v", err)
	}
	j.player = nil
}

// synthesizeJingle renders the melody as 16-bit little-endian stereo PCM.
// Each note is a sine with a short attack and an exponential decay.
func synthesizeJingle(sampleRate int) []byte {
	var total int
	for _, n := range jingleMelody {
		total += noteSamples(n, sampleRate)
	}
	pcm := make([]byte, 0, total*4)
	for _, n := range jingleMelody {
		count := noteSamples(n, sampleRate)
		for i := 0; i < count; i++ {
			var v float64
			if n.freq != noteRest {
				t := float64(i) / float64(sampleRate)
				env := math.Exp(-jingleDecayPerSecond * t)
				if t < jingleAttackSeconds {
					env *= t / jingleAttackSeconds
				}
				v = math.Sin(2*math.Pi*n.freq*t) * env * jingleAmplitude
			}
			s := int16(v * math.MaxInt16)
			lo, hi := byte(s), byte(s>>8)
			pcm = append(pcm, lo, hi, lo, hi)
		}
	}
	return pcm
}

func noteSamples(n jingleNote, sampleRate int) int {
	return int(n.beats * jingleBeatSeconds * float64(sampleRate))
}
