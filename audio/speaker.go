package audio

import (
	"fmt"
	"log"

	"github.com/gordonklaus/portaudio"
)

// macos:	brew install portaudio
// debian:	sudo apt-get install portaudio19-dev
// windows:	pacman -S mingw-w64-x86_64-portaudio

const (
	framesPerBuffer = 256
	maxVoices       = 16
)

// Speaker mixes bounce tones into the default output device.
type Speaker struct {
	sampleRate  int
	stream      *portaudio.Stream
	tone        []float32
	requests    chan float32
	mixer       mixer
	isStreaming bool
}

func NewSpeaker(sampleRate int) (*Speaker, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}
	return &Speaker{
		sampleRate: sampleRate,
		mixer:      mixer{voices: make([]voice, 0, maxVoices)},
		tone:       BounceTone(sampleRate, 1),
		requests:   make(chan float32, maxVoices),
	}, nil
}

// audioCallback runs on the PortAudio thread. The mixer is only touched here.
// Voices are capped at maxVoices so the preallocated list never grows.
func (s *Speaker) audioCallback(out []float32) {
drain:
	for {
		select {
		case intensity := <-s.requests:
			if s.mixer.active() < maxVoices {
				s.mixer.add(s.tone, clamp01(intensity))
			}
		default:
			break drain
		}
	}
	s.mixer.fill(out)
}

func (s *Speaker) Start() error {
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(s.sampleRate), framesPerBuffer, s.audioCallback)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("failed to start audio stream: %w", err)
	}
	s.stream = stream
	s.isStreaming = true
	return nil
}

// Play uses a non-blocking send so the render loop never waits on audio.
func (s *Speaker) Play(intensity float32) {
	select {
	case s.requests <- intensity:
	default:
		log.Println("Warning: bounce sound queue is full. Dropping sound.")
	}
}

func (s *Speaker) Stop() error {
	if !s.isStreaming {
		return portaudio.Terminate()
	}
	s.isStreaming = false
	if err := s.stream.Close(); err != nil {
		portaudio.Terminate()
		return err
	}
	return portaudio.Terminate()
}

// Open returns a started Speaker, or a NullDevice when sound is disabled or
// the output cannot be opened.
func Open(enabled bool, sampleRate int) Device {
	if !enabled {
		return NewNullDevice()
	}
	s, err := NewSpeaker(sampleRate)
	if err == nil {
		err = s.Start()
	}
	if err != nil {
		log.Printf("Could not open audio output: %v. Using silent fallback.", err)
		return NewNullDevice()
	}
	log.Printf("Audio output started at %d Hz", sampleRate)
	return s
}
