package audio

import (
	"math"

	"github.com/mjibson/go-dsp/window"
)

const (
	DefaultSampleRate = 44100

	ToneFrequency = 330.0 // Hz
	ToneDuration  = 0.08  // seconds
	maxGain       = 0.5

	// ReferenceSpeed is the impact speed that plays at full volume.
	ReferenceSpeed = 2.0
)

// Intensity maps a post-bounce vertical speed to a volume in [0, 1].
func Intensity(speed float32) float32 {
	return clamp01(float32(math.Abs(float64(speed))) / ReferenceSpeed)
}

// BounceTone synthesizes a sine burst shaped by a Hann window so it starts
// and ends at silence.
func BounceTone(sampleRate int, intensity float32) []float32 {
	n := int(float64(sampleRate) * ToneDuration)
	if n < 2 {
		return nil
	}
	env := window.Hann(n)
	gain := float64(clamp01(intensity)) * maxGain

	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		out[i] = float32(gain * env[i] * math.Sin(2*math.Pi*ToneFrequency*t))
	}
	return out
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
