package graphics

// Key identifies the keys the demo reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyI
	KeyC
	KeyH
	KeyQ
	KeyEscape
)

type MouseButton int

const (
	MouseButtonUnknown MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
)

// Context defines the interface for an OpenGL context and the window it draws to.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	SetShouldClose(bool)
	// EndFrame presents the frame and processes pending window events, which
	// may run registered callbacks.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
	RegisterKeyCallback(key Key, f func())
	RegisterMouseButtonCallback(button MouseButton, f func())
	SetResizeCallback(f func(width, height int))
}
