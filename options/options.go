package options

import (
	"fmt"
	"math"
)

const (
	ModeInteractive = "interactive"
	ModeRecord      = "record"
	ModeCheck       = "check"
)

type BallOptions struct {
	Help           *bool
	Mode           *string
	Width          *int
	Height         *int
	VertexShader   *string
	FragmentShader *string
	Translate      *bool // Translate GLSL ES 3.00 sources to desktop GLSL before compiling
	Sound          *bool
	MaxFrameDelta  *float64 // Upper bound on the simulation step in seconds, 0 disables clamping
	// Record options
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
}

// Defaults returns options populated with the values the demo ships with.
func Defaults() *BallOptions {
	help := false
	mode := ModeInteractive
	width, height := 800, 800
	vs, fs := "shaders/vshader.glsl", "shaders/fshader.glsl"
	translate := true
	sound := false
	maxdt := 0.0
	duration := 10.0
	fps := 60
	output := "bounce.mp4"
	codec := "libx264"
	ffmpegPath := ""
	return &BallOptions{
		Help:           &help,
		Mode:           &mode,
		Width:          &width,
		Height:         &height,
		VertexShader:   &vs,
		FragmentShader: &fs,
		Translate:      &translate,
		Sound:          &sound,
		MaxFrameDelta:  &maxdt,
		Duration:       &duration,
		FPS:            &fps,
		OutputFile:     &output,
		Codec:          &codec,
		FFMPEGPath:     &ffmpegPath,
	}
}

// Validate reports the first option that cannot be used.
func (o *BallOptions) Validate() error {
	switch *o.Mode {
	case ModeInteractive, ModeRecord, ModeCheck:
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.VertexShader == "" || *o.FragmentShader == "" {
		return fmt.Errorf("both vertex and fragment shader paths are required")
	}
	if *o.MaxFrameDelta < 0 {
		return fmt.Errorf("maxdt must not be negative, got %v", *o.MaxFrameDelta)
	}
	if *o.Mode == ModeRecord {
		if *o.FPS <= 0 {
			return fmt.Errorf("fps must be positive, got %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("duration must be positive, got %v", *o.Duration)
		}
		if *o.OutputFile == "" {
			return fmt.Errorf("record mode needs an output file")
		}
	}
	return nil
}

// FrameDelta applies the optional clamp to a measured frame time.
func (o *BallOptions) FrameDelta(dt float64) float32 {
	if *o.MaxFrameDelta > 0 && dt > *o.MaxFrameDelta {
		dt = *o.MaxFrameDelta
	}
	return float32(dt)
}

// TotalFrames is the number of frames rendered in record mode, rounded to
// the nearest frame.
func (o *BallOptions) TotalFrames() int {
	return int(math.Round(*o.Duration * float64(*o.FPS)))
}
