package app

import (
	"fmt"
	"log"

	"github.com/richinsley/gobounce/encoder"
	"github.com/richinsley/gobounce/scene"
)

// FrameReader renders a state offscreen and returns its pixels.
type FrameReader interface {
	Renderer
	ReadFrame(s *scene.State) ([]byte, error)
}

// FrameSink consumes encoded frames in order.
type FrameSink interface {
	SendVideo(frame *encoder.Frame) error
	Close() error
}

// Record renders opts.TotalFrames() frames with a fixed time step of 1/fps
// and sends them to sink. GL work runs through call; sending happens on the
// calling goroutine so encoding overlaps rendering. The sink is always closed.
func (a *App) Record(call Executor, r FrameReader, sink FrameSink) error {
	log.Println("Starting in record mode...")
	totalFrames := a.opts.TotalFrames()
	dt := float32(1.0 / float64(*a.opts.FPS))

	// The offscreen target has the configured size, not the window's.
	a.state.Resize(*a.opts.Width, *a.opts.Height)

	var renderErr error
	for i := 0; i < totalFrames; i++ {
		var pixels []byte
		call(func() {
			if i > 0 {
				a.advance(dt)
			}
			pixels, renderErr = r.ReadFrame(a.state)
		})
		if renderErr != nil {
			renderErr = fmt.Errorf("error reading pixels on frame %d: %w", i, renderErr)
			break
		}
		if err := sink.SendVideo(&encoder.Frame{Pixels: pixels, PTS: int64(i)}); err != nil {
			renderErr = err
			break
		}
	}

	closeErr := sink.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return closeErr
	}
	log.Printf("Recorded %d frames", totalFrames)
	return nil
}
