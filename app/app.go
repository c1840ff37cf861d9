// Package app runs the bouncing-ball demo on top of a graphics context,
// a renderer and an audio device.
package app

import (
	"fmt"
	"io"
	"log"

	"github.com/richinsley/gobounce/audio"
	"github.com/richinsley/gobounce/graphics"
	"github.com/richinsley/gobounce/options"
	"github.com/richinsley/gobounce/scene"
)

const HelpText = `Controls:
  Mouse Left Button: Toggle drawing mode (wireframe/solid)
  Mouse Right Button: Toggle object type (cube/sphere)
  Keyboard 'i': Reinitialize ball position
  Keyboard 'c': Change color (red <-> blue)
  Keyboard 'h': Print help
  Keyboard 'q': Quit program
`

// Renderer draws a scene state to the current framebuffer.
type Renderer interface {
	RenderFrame(s *scene.State)
	Resize(width, height int)
	Shutdown()
}

// Executor runs f on the thread owning the graphics context and waits for it.
type Executor func(f func())

// Direct runs f on the calling goroutine.
func Direct(f func()) { f() }

type App struct {
	context  graphics.Context
	renderer Renderer
	sound    audio.Device
	opts     *options.BallOptions
	state    *scene.State
	help     io.Writer
	lastTime float64
}

// New wires input callbacks to the scene state, applies the initial
// framebuffer size and prints the controls to help.
func New(ctx graphics.Context, r Renderer, sound audio.Device, opts *options.BallOptions, help io.Writer) *App {
	a := &App{
		context:  ctx,
		renderer: r,
		sound:    sound,
		opts:     opts,
		state:    scene.New(),
		help:     help,
	}

	ctx.RegisterKeyCallback(graphics.KeyI, a.state.Reset)
	ctx.RegisterKeyCallback(graphics.KeyC, a.state.ToggleColor)
	ctx.RegisterKeyCallback(graphics.KeyH, a.PrintHelp)
	ctx.RegisterKeyCallback(graphics.KeyQ, a.Quit)
	ctx.RegisterKeyCallback(graphics.KeyEscape, a.Quit)
	ctx.RegisterMouseButtonCallback(graphics.MouseButtonLeft, a.state.ToggleWireframe)
	ctx.RegisterMouseButtonCallback(graphics.MouseButtonRight, a.state.ToggleShape)
	ctx.SetResizeCallback(a.Resize)

	width, height := ctx.GetFramebufferSize()
	a.Resize(width, height)

	a.PrintHelp()
	a.lastTime = ctx.Time()
	return a
}

// State exposes the simulation state.
func (a *App) State() *scene.State {
	return a.state
}

func (a *App) PrintHelp() {
	fmt.Fprint(a.help, HelpText)
}

func (a *App) Quit() {
	a.context.SetShouldClose(true)
}

// Resize updates the projection and viewport. Zero sizes are ignored.
func (a *App) Resize(width, height int) {
	if !a.state.Resize(width, height) {
		return
	}
	a.renderer.Resize(width, height)
}

// advance moves the simulation forward by dt and plays a bounce when the ball
// leaves the floor again.
func (a *App) advance(dt float32) {
	contact := a.state.Update(dt)
	if contact.Hit && contact.Speed > 0 {
		a.sound.Play(audio.Intensity(contact.Speed))
	}
}

// Step runs one interactive frame. It returns false once the window was asked to close.
func (a *App) Step() bool {
	if a.context.ShouldClose() {
		return false
	}
	now := a.context.Time()
	dt := a.opts.FrameDelta(now - a.lastTime)
	a.lastTime = now

	a.advance(dt)
	a.renderer.RenderFrame(a.state)
	a.context.EndFrame()
	return true
}

// Run loops Step on call until the window closes.
func (a *App) Run(call Executor) {
	log.Println("Starting interactive render loop...")
	running := true
	for running {
		call(func() {
			running = a.Step()
		})
	}
	log.Println("Render loop finished.")
}
