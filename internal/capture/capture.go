// Package capture provides the audio capture engines: a system-audio engine
// backed by Core Audio process taps on macOS, and the microphone input path.
// The permission layer also uses it as a probe, since constructing an engine
// or opening a stream is what makes the OS raise its consent dialogs.
package capture

import (
	"errors"
	"time"
)

// ErrPermissionDenied reports that the OS refused capture access. Callers
// that probe for consent match on this with errors.Is.
var ErrPermissionDenied = errors.New("audio capture permission denied")

// ErrNotSupported is returned where system audio capture has no platform
// support (everything except macOS).
var ErrNotSupported = errors.New("system audio capture is only supported on macOS")

// Chunk is a block of captured PCM samples.
type Chunk struct {
	// Samples is interleaved 32-bit float PCM.
	Samples   []float32
	Timestamp time.Time
}

// Stream is a running capture stream.
type Stream interface {
	// Chunks delivers captured audio. The channel closes when the stream
	// stops.
	Chunks() <-chan *Chunk
	// Close stops the stream and releases its device resources.
	Close() error
}

// Engine opens capture streams on one audio source.
type Engine interface {
	Stream() (Stream, error)
	Close() error
}

// EngineFactory constructs an Engine. The permission layer takes a factory
// rather than an Engine so that a failed construction can be classified too.
type EngineFactory func() (Engine, error)

// NewSystemAudioEngine returns the platform's system-audio capture engine.
func NewSystemAudioEngine() (Engine, error) {
	return newSystemAudioEngine()
}
