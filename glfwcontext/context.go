package glfwcontext

import (
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gobounce/graphics"
	options "github.com/richinsley/gobounce/options"
)

const windowTitle = "Bouncing Ball Simulation"

// Context owns a GLFW window and dispatches its input to registered callbacks.
type Context struct {
	window *glfw.Window
	// Functions to be called on key and mouse button presses.
	keyCallbacks    map[graphics.Key]func()
	buttonCallbacks map[graphics.MouseButton]func()
	resizeCallback  func(width, height int)
}

// New creates a GLFW window with an OpenGL 4.1 core context and returns a Context object.
func New(options *options.BallOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*options.Width, *options.Height, windowTitle, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:          win,
		keyCallbacks:    make(map[graphics.Key]func()),
		buttonCallbacks: make(map[graphics.MouseButton]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	return c, nil
}

// RegisterKeyCallback registers a function to be called when key is pressed.
func (c *Context) RegisterKeyCallback(key graphics.Key, f func()) {
	c.keyCallbacks[key] = f
}

// RegisterMouseButtonCallback registers a function to be called when button is pressed.
func (c *Context) RegisterMouseButtonCallback(button graphics.MouseButton, f func()) {
	c.buttonCallbacks[button] = f
}

// SetResizeCallback registers the function receiving new framebuffer sizes in pixels.
func (c *Context) SetResizeCallback(f func(width, height int)) {
	c.resizeCallback = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if callback, ok := c.keyCallbacks[glfwKeyToKey(key)]; ok {
		callback()
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	if callback, ok := c.buttonCallbacks[glfwMouseButtonToButton(button)]; ok {
		callback()
	}
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.resizeCallback != nil {
		c.resizeCallback(width, height)
	}
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window. GLFW itself is released by TerminateGraphics.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) SetShouldClose(value bool) {
	c.window.SetShouldClose(value)
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}

func glfwKeyToKey(key glfw.Key) graphics.Key {
	switch key {
	case glfw.KeyI:
		return graphics.KeyI
	case glfw.KeyC:
		return graphics.KeyC
	case glfw.KeyH:
		return graphics.KeyH
	case glfw.KeyQ:
		return graphics.KeyQ
	case glfw.KeyEscape:
		return graphics.KeyEscape
	default:
		return graphics.KeyUnknown
	}
}

func glfwMouseButtonToButton(button glfw.MouseButton) graphics.MouseButton {
	switch button {
	case glfw.MouseButtonLeft:
		return graphics.MouseButtonLeft
	case glfw.MouseButtonRight:
		return graphics.MouseButtonRight
	default:
		return graphics.MouseButtonUnknown
	}
}
