package encoder

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/richinsley/gobounce/options"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame represents a single rendered video frame's data, ready for encoding.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// FFmpegEncoder pipes raw RGBA frames into an ffmpeg process.
type FFmpegEncoder struct {
	opts        *options.BallOptions
	frameSize   int
	videoFrames chan *Frame
	done        chan error
	stream      *ffmpeg.Stream
}

const queuedFrames = 3

// InputArgs describe the raw frames written to ffmpeg's stdin.
func InputArgs(opts *options.BallOptions) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":       "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", *opts.Width, *opts.Height),
		"r":       *opts.FPS,
	}
}

// OutputArgs select the codec. Frames are read back bottom row first, so they
// are flipped here rather than on the GPU.
func OutputArgs(opts *options.BallOptions) ffmpeg.KwArgs {
	outputArgs := ffmpeg.KwArgs{
		"vf":      "vflip",
		"c:v":     *opts.Codec,
		"pix_fmt": "yuv420p",
	}
	isHEVC := *opts.Codec == "libx265" || strings.HasPrefix(*opts.Codec, "hevc")
	if isHEVC && strings.EqualFold(filepath.Ext(*opts.OutputFile), ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return outputArgs
}

// NewFFmpegEncoder starts ffmpeg and the goroutine feeding it.
func NewFFmpegEncoder(opts *options.BallOptions, frameSize int) (*FFmpegEncoder, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("invalid frame size %d", frameSize)
	}
	e := &FFmpegEncoder{
		opts:        opts,
		frameSize:   frameSize,
		videoFrames: make(chan *Frame, queuedFrames),
		done:        make(chan error, 1),
	}

	pipeReader, pipeWriter := io.Pipe()
	e.stream = ffmpeg.Input("pipe:", InputArgs(opts)).
		Output(*opts.OutputFile, OutputArgs(opts)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		e.stream = e.stream.SetFfmpegPath(*opts.FFMPEGPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := e.stream.Run()
		// Unblock the writer if ffmpeg exits before consuming all frames.
		if err != nil {
			pipeReader.CloseWithError(err)
		} else {
			pipeReader.Close()
		}
		errc <- err
	}()

	go e.run(pipeWriter, errc)

	log.Printf("Encoding %dx%d @ %d fps to %s with %s", *opts.Width, *opts.Height, *opts.FPS, *opts.OutputFile, *opts.Codec)
	return e, nil
}

// run is the consumer. It keeps draining the frame channel after a write
// error so the producer never blocks.
func (e *FFmpegEncoder) run(w *io.PipeWriter, errc <-chan error) {
	var writeErr error
	for frame := range e.videoFrames {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			log.Printf("Error writing frame %d to FFmpeg: %v", frame.PTS, err)
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
		}
	}
	w.Close()

	runErr := <-errc
	if runErr != nil {
		e.done <- fmt.Errorf("ffmpeg failed: %w", runErr)
		return
	}
	e.done <- writeErr
}

// SendVideo queues a frame, blocking while the encoder is behind.
func (e *FFmpegEncoder) SendVideo(frame *Frame) error {
	if len(frame.Pixels) != e.frameSize {
		return fmt.Errorf("frame %d has %d bytes, want %d", frame.PTS, len(frame.Pixels), e.frameSize)
	}
	e.videoFrames <- frame
	return nil
}

// Close flushes queued frames, waits for ffmpeg to exit and returns its error.
func (e *FFmpegEncoder) Close() error {
	close(e.videoFrames)
	return <-e.done
}
