//go:build darwin

package permissions

import (
	"fmt"
	"os/exec"

	"github.com/gordonklaus/portaudio"

	"github.com/yunseo/TapNote/internal/capture"
	"github.com/yunseo/TapNote/internal/logger"
)

// securityPaneURL deep-links System Settings to Privacy & Security. There is
// no pane-level URL for Audio Capture, so the user lands on the main privacy
// page. The scheme is an OS contract and must not change.
const securityPaneURL = "x-apple.systempreferences:com.apple.preference.security"

type darwinProvider struct{}

func newPlatformProvider() Provider { return darwinProvider{} }

func (darwinProvider) Check(c Capability) bool {
	switch c {
	case SystemAudioCapture:
		// Core Audio process taps (macOS 14.4+) show their consent dialog
		// when the tap is created, not before. There is nothing to
		// preflight here; report granted and let tap creation prompt.
		logger.Debug("system audio consent is requested at tap creation")
		return true
	case Microphone:
		return defaultInputPresent()
	}
	return false
}

func (darwinProvider) Request(c Capability) error {
	switch c {
	case SystemAudioCapture:
		// Fire and forget; the settings panel's exit status is not observed.
		if err := exec.Command("open", securityPaneURL).Start(); err != nil {
			return fmt.Errorf("open system settings: %w", err)
		}
		logger.Info("opened System Settings; enable Audio Capture and restart the app")
		return nil
	case Microphone:
		// The stream open is what makes the OS raise the dialog.
		if err := capture.OpenDefaultInputStream(); err != nil {
			return fmt.Errorf("trigger microphone consent: %w", err)
		}
		return nil
	}
	return nil
}

// defaultInputPresent asks the default audio host for a default input
// device. Until microphone access is granted macOS reports none.
func defaultInputPresent() bool {
	if err := portaudio.Initialize(); err != nil {
		logger.Warn("portaudio init failed", "error", err)
		return false
	}
	defer portaudio.Terminate()

	dev, err := portaudio.DefaultInputDevice()
	if err != nil || dev == nil {
		logger.Warn("no default input device; microphone permission may not be granted")
		return false
	}
	return true
}
