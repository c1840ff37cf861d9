package audio

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/mjibson/go-dsp/fft"
)

func TestBounceToneStartsAndEndsSilent(t *testing.T) {
	tone := BounceTone(DefaultSampleRate, 1)
	wantLen := int(DefaultSampleRate * ToneDuration)
	if len(tone) != wantLen {
		t.Fatalf("len = %d, want %d", len(tone), wantLen)
	}
	if math.Abs(float64(tone[0])) > 1e-6 || math.Abs(float64(tone[len(tone)-1])) > 1e-6 {
		t.Errorf("tone edges not silent: %f, %f", tone[0], tone[len(tone)-1])
	}
	var peak float32
	for _, s := range tone {
		if s > peak {
			peak = s
		}
	}
	if peak <= 0.4 || peak > maxGain {
		t.Errorf("peak = %f, want close to %f", peak, maxGain)
	}
}

func TestBounceTonePeaksAtToneFrequency(t *testing.T) {
	tone := BounceTone(DefaultSampleRate, 1)
	x := make([]float64, len(tone))
	for i, s := range tone {
		x[i] = float64(s)
	}
	spectrum := fft.FFTReal(x)

	best, bestMag := 0, 0.0
	for i := 1; i < len(spectrum)/2; i++ {
		if m := cmplx.Abs(spectrum[i]); m > bestMag {
			best, bestMag = i, m
		}
	}
	binWidth := float64(DefaultSampleRate) / float64(len(x))
	got := float64(best) * binWidth
	if math.Abs(got-ToneFrequency) > binWidth {
		t.Errorf("dominant frequency = %.1f Hz, want %.1f ± %.1f", got, ToneFrequency, binWidth)
	}
}

func TestBounceToneScalesWithIntensity(t *testing.T) {
	loud := BounceTone(DefaultSampleRate, 1)
	quiet := BounceTone(DefaultSampleRate, 0.25)
	silent := BounceTone(DefaultSampleRate, -3)
	mid := len(loud) / 2
	if math.Abs(float64(quiet[mid])-0.25*float64(loud[mid])) > 1e-6 {
		t.Errorf("quiet[mid] = %f, want a quarter of %f", quiet[mid], loud[mid])
	}
	for i, s := range silent {
		if s != 0 {
			t.Fatalf("negative intensity produced sample %d = %f", i, s)
		}
	}
}

func TestIntensity(t *testing.T) {
	tests := []struct {
		speed, want float32
	}{
		{0, 0},
		{1, 0.5},
		{-1, 0.5},
		{ReferenceSpeed * 3, 1},
	}
	for _, tt := range tests {
		if got := Intensity(tt.speed); got != tt.want {
			t.Errorf("Intensity(%v) = %v, want %v", tt.speed, got, tt.want)
		}
	}
}

func TestMixerSumsAndRetiresVoices(t *testing.T) {
	var m mixer
	m.add([]float32{0.5, 0.5, 0.5}, 1)
	m.add([]float32{0.25}, 1)
	m.add(nil, 1)
	m.add([]float32{1}, 0)
	if m.active() != 2 {
		t.Fatalf("active voices = %d, want 2", m.active())
	}

	out := make([]float32, 2)
	m.fill(out)
	if out[0] != 0.75 || out[1] != 0.5 {
		t.Errorf("first buffer = %v, want [0.75 0.5]", out)
	}
	if m.active() != 1 {
		t.Errorf("active voices after first buffer = %d, want 1", m.active())
	}

	m.fill(out)
	if out[0] != 0.5 || out[1] != 0 {
		t.Errorf("second buffer = %v, want [0.5 0]", out)
	}
	if m.active() != 0 {
		t.Errorf("active voices after second buffer = %d, want 0", m.active())
	}
}

func TestMixerSharesToneAcrossGains(t *testing.T) {
	tone := BounceTone(DefaultSampleRate, 1)
	want := BounceTone(DefaultSampleRate, 0.25)

	var m mixer
	m.add(tone, 0.25)
	m.add(tone, 0.5)
	out := make([]float32, len(tone))
	m.fill(out)

	mid := len(tone) / 2
	if got := float64(out[mid]); math.Abs(got-3*float64(want[mid])) > 1e-5 {
		t.Errorf("mixed[mid] = %f, want %f", got, 3*want[mid])
	}
	if tone[mid] != BounceTone(DefaultSampleRate, 1)[mid] {
		t.Error("mixing modified the shared tone")
	}
}

func TestSpeakerCapsVoices(t *testing.T) {
	s := &Speaker{
		sampleRate: DefaultSampleRate,
		tone:       BounceTone(DefaultSampleRate, 1),
		requests:   make(chan float32, maxVoices),
		mixer:      mixer{voices: make([]voice, 0, maxVoices)},
	}
	out := make([]float32, framesPerBuffer)
	for i := 0; i < 3; i++ {
		for j := 0; j < maxVoices; j++ {
			s.Play(1)
		}
		s.audioCallback(out)
	}
	if s.mixer.active() != maxVoices {
		t.Errorf("active voices = %d, want %d", s.mixer.active(), maxVoices)
	}
	if cap(s.mixer.voices) != maxVoices {
		t.Errorf("voice list grew to %d", cap(s.mixer.voices))
	}
	for i, v := range out {
		if v > 1 || v < -1 {
			t.Fatalf("sample %d = %f out of range", i, v)
		}
	}
}

func TestMixerClips(t *testing.T) {
	var m mixer
	m.add([]float32{0.9, -0.9}, 1)
	m.add([]float32{0.9, -0.9}, 1)
	out := make([]float32, 2)
	m.fill(out)
	if out[0] != 1 || out[1] != -1 {
		t.Errorf("clipped output = %v, want [1 -1]", out)
	}
}

func TestNullDevice(t *testing.T) {
	d := NewNullDevice()
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	d.Play(1)
	d.Play(0.2)
	if d.Played != 2 {
		t.Errorf("Played = %d, want 2", d.Played)
	}
	if err := d.Stop(); err != nil {
		t.Fatal(err)
	}
}

func TestOpenDisabledIsSilent(t *testing.T) {
	if _, ok := Open(false, DefaultSampleRate).(*NullDevice); !ok {
		t.Error("Open(false) should return a NullDevice")
	}
}
