package audio

// Device plays short sounds on request.
type Device interface {
	Start() error
	// Play queues a bounce sound. intensity is clamped to [0, 1]. It must not block.
	Play(intensity float32)
	Stop() error
}

// NullDevice is the silent fallback used when sound is disabled or no output is available.
type NullDevice struct {
	Played int
}

func NewNullDevice() *NullDevice {
	return &NullDevice{}
}

func (d *NullDevice) Start() error { return nil }

// Play only counts requests.
func (d *NullDevice) Play(intensity float32) { d.Played++ }

func (d *NullDevice) Stop() error { return nil }
