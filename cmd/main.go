package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/faiface/mainthread"
	"github.com/richinsley/gobounce/app"
	"github.com/richinsley/gobounce/audio"
	"github.com/richinsley/gobounce/encoder"
	"github.com/richinsley/gobounce/glfwcontext"
	"github.com/richinsley/gobounce/options"
	"github.com/richinsley/gobounce/renderer"
	"github.com/richinsley/gobounce/shader"
)

// parseFlags binds every option to fs and parses args into a fresh set of
// defaults.
func parseFlags(fs *flag.FlagSet, args []string) (*options.BallOptions, error) {
	opts := options.Defaults()
	fs.BoolVar(opts.Help, "help", *opts.Help, "Show help message")
	fs.StringVar(opts.Mode, "mode", *opts.Mode, "Run mode: interactive, record or check")
	fs.IntVar(opts.Width, "width", *opts.Width, "Width of the window or output")
	fs.IntVar(opts.Height, "height", *opts.Height, "Height of the window or output")
	fs.StringVar(opts.VertexShader, "vshader", *opts.VertexShader, "Path to the vertex shader")
	fs.StringVar(opts.FragmentShader, "fshader", *opts.FragmentShader, "Path to the fragment shader")
	fs.BoolVar(opts.Translate, "translate", *opts.Translate, "Translate GLSL ES 3.00 shaders to GLSL 4.10 before compiling")
	fs.BoolVar(opts.Sound, "sound", *opts.Sound, "Play a tone when the ball bounces")
	fs.Float64Var(opts.MaxFrameDelta, "maxdt", *opts.MaxFrameDelta, "Clamp the simulation step to this many seconds (0 disables)")

	// Recording flags
	fs.Float64Var(opts.Duration, "duration", *opts.Duration, "Duration to record in seconds")
	fs.IntVar(opts.FPS, "fps", *opts.FPS, "Frames per second for recording")
	fs.StringVar(opts.OutputFile, "output", *opts.OutputFile, "Output file name for recording")
	fs.StringVar(opts.Codec, "codec", *opts.Codec, "Video codec for recording")
	fs.StringVar(opts.FFMPEGPath, "ffmpeg", *opts.FFMPEGPath, "Path to ffmpeg executable")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return opts, nil
}

func runCheck(opts *options.BallOptions) {
	report, err := shader.Check(*opts.VertexShader, *opts.FragmentShader)
	if err != nil {
		log.Fatalf("Shader check failed: %v", err)
	}
	for _, stage := range []struct {
		path  string
		names map[string]string
	}{
		{*opts.VertexShader, report.Vertex.Names},
		{*opts.FragmentShader, report.Fragment.Names},
	} {
		names := make([]string, 0, len(stage.names))
		for name := range stage.names {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			log.Printf("%s: %s -> %s", stage.path, name, stage.names[name])
		}
	}
	log.Println("Shaders OK")
}

// sinkFactory starts the consumer of recorded frames.
type sinkFactory func(opts *options.BallOptions, frameSize int) (app.FrameSink, error)

func newFFmpegSink(opts *options.BallOptions, frameSize int) (app.FrameSink, error) {
	enc, err := encoder.NewFFmpegEncoder(opts, frameSize)
	if err != nil {
		return nil, err
	}
	return enc, nil
}

func recordVideo(a *app.App, call app.Executor, r app.FrameReader, opts *options.BallOptions, newSink sinkFactory) error {
	sink, err := newSink(opts, renderer.FrameSize(*opts.Width, *opts.Height))
	if err != nil {
		return fmt.Errorf("failed to start encoder: %w", err)
	}
	if err := a.Record(call, r, sink); err != nil {
		return fmt.Errorf("offscreen rendering failed: %w", err)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
	return nil
}

func run(opts *options.BallOptions) error {
	record := *opts.Mode == options.ModeRecord

	var (
		ctx *glfwcontext.Context
		r   *renderer.Renderer
		err error
	)
	mainthread.Call(func() {
		if err = glfwcontext.InitGraphics(); err != nil {
			return
		}
		// If recording, the window stays hidden and frames go to an offscreen target
		if ctx, err = glfwcontext.New(opts, !record); err != nil {
			err = fmt.Errorf("failed to create window: %w", err)
			return
		}
		if r, err = renderer.NewRenderer(ctx, opts, record); err != nil {
			ctx.Shutdown()
			err = fmt.Errorf("failed to create renderer: %w", err)
		}
	})
	if err != nil {
		mainthread.Call(glfwcontext.TerminateGraphics)
		return err
	}
	defer mainthread.Call(func() {
		r.Shutdown()
		ctx.Shutdown()
		glfwcontext.TerminateGraphics()
	})

	var sound audio.Device = audio.NewNullDevice()
	if !record {
		sound = audio.Open(*opts.Sound, audio.DefaultSampleRate)
	}
	defer sound.Stop()

	var a *app.App
	mainthread.Call(func() {
		a = app.New(ctx, r, sound, opts, os.Stdout)
	})

	if !record {
		a.Run(mainthread.Call)
		return nil
	}
	return recordVideo(a, mainthread.Call, r, opts, newFFmpegSink)
}

func main() {
	opts, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	if *opts.Help {
		fmt.Println("Bouncing Ball Simulation")
		flag.PrintDefaults()
		fmt.Print(app.HelpText)
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *opts.Mode == options.ModeCheck {
		runCheck(opts)
		return
	}

	// run returns only after its deferred shutdown, so exiting here is safe.
	var runErr error
	mainthread.Run(func() {
		runErr = run(opts)
	})
	if runErr != nil {
		log.Fatalf("%v", runErr)
	}
}
