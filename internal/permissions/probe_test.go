package permissions

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yunseo/TapNote/internal/capture"
)

type fakeStream struct {
	closed bool
}

func (s *fakeStream) Chunks() <-chan *capture.Chunk { return nil }
func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

type fakeEngine struct {
	streamErr error
	stream    *fakeStream
	closed    bool
}

func (e *fakeEngine) Stream() (capture.Stream, error) {
	if e.streamErr != nil {
		return nil, e.streamErr
	}
	return e.stream, nil
}

func (e *fakeEngine) Close() error {
	e.closed = true
	return nil
}

func factoryErr(err error) capture.EngineFactory {
	return func() (capture.Engine, error) { return nil, err }
}

func factoryOK(e *fakeEngine) capture.EngineFactory {
	return func() (capture.Engine, error) { return e, nil }
}

func TestTriggerSystemAudioTypedDenialIsSuccess(t *testing.T) {
	err := fmt.Errorf("create process tap: %w", capture.ErrPermissionDenied)
	require.NoError(t, TriggerSystemAudio(factoryErr(err)))
}

func TestTriggerSystemAudioPermissionTextIsSuccess(t *testing.T) {
	for _, msg := range []string{
		"Permission denied by TCC",
		"PERMISSION required",
		"failed to open Audio tap",
	} {
		require.NoError(t, TriggerSystemAudio(factoryErr(errors.New(msg))), msg)
	}
}

func TestTriggerSystemAudioUnrelatedFailurePropagates(t *testing.T) {
	busy := errors.New("device busy")
	err := TriggerSystemAudio(factoryErr(busy))
	require.ErrorIs(t, err, busy, "non-permission failures must surface verbatim")
}

func TestTriggerSystemAudioStreamFailureClassified(t *testing.T) {
	eng := &fakeEngine{streamErr: errors.New("permission pending")}
	require.NoError(t, TriggerSystemAudio(factoryOK(eng)))
	require.True(t, eng.closed)

	eng = &fakeEngine{streamErr: errors.New("device busy")}
	require.Error(t, TriggerSystemAudio(factoryOK(eng)))
}

func TestTriggerSystemAudioSuccessDiscardsStream(t *testing.T) {
	s := &fakeStream{}
	eng := &fakeEngine{stream: s}

	require.NoError(t, TriggerSystemAudio(factoryOK(eng)))
	require.True(t, s.closed, "probe stream exists only to trigger the prompt")
	require.True(t, eng.closed)
}

func TestTriggerSystemAudioUnsupportedPlatformIsSuccess(t *testing.T) {
	require.NoError(t, TriggerSystemAudio(factoryErr(capture.ErrNotSupported)))
}
