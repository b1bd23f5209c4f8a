//go:build darwin

package capture

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// OpenDefaultInputStream opens a stream on the default input device and
// immediately discards it. Opening the stream is what makes macOS raise the
// microphone consent dialog, so the call may block briefly while the dialog
// is on screen.
func OpenDefaultInputStream() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	buf := make([]float32, 512)
	stream, err := portaudio.OpenDefaultStream(1, 0, 44100, len(buf), buf)
	if err != nil {
		return fmt.Errorf("open default input stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start default input stream: %w", err)
	}
	return stream.Stop()
}
