package permissions

import (
	"errors"
	"strings"

	"github.com/yunseo/TapNote/internal/capture"
	"github.com/yunseo/TapNote/internal/logger"
)

// TriggerSystemAudio provokes the Audio Capture consent dialog by
// constructing a capture engine and opening a stream on it. A failure that
// is permission-shaped means the dialog was shown, which is the outcome this
// call exists for, so it is reported as success. Any other failure is
// propagated verbatim. A fully successful open also succeeds; the stream is
// discarded immediately, it only existed to trigger the prompt.
func TriggerSystemAudio(newEngine capture.EngineFactory) error {
	eng, err := newEngine()
	if err != nil {
		return classifyProbeErr(err)
	}
	defer eng.Close()

	s, err := eng.Stream()
	if err != nil {
		return classifyProbeErr(err)
	}
	if err := s.Close(); err != nil {
		logger.Debug("probe stream close", "error", err)
	}
	return nil
}

// classifyProbeErr separates "consent pending" from real failures. The typed
// sentinels are authoritative. The substring fallback covers errors that
// cross the C boundary as free text; it is brittle across library versions
// and locales and only kept for errors that carry no better signal.
func classifyProbeErr(err error) error {
	if errors.Is(err, capture.ErrNotSupported) {
		logger.Debug("system audio capture not required on this platform")
		return nil
	}
	if errors.Is(err, capture.ErrPermissionDenied) {
		logger.Info("audio capture consent dialog should have appeared; grant it and restart")
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission") || strings.Contains(msg, "audio") {
		logger.Info("audio capture consent dialog should have appeared; grant it and restart",
			"cause", err)
		return nil
	}
	return err
}
