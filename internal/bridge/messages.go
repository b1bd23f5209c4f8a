package bridge

// Command types accepted from the UI. The six permission operations are
// argument-less and idempotent from the UI's point of view.
const (
	TypeCheckAudioCapture   = "checkAudioCapturePermission"
	TypeRequestAudioCapture = "requestAudioCapturePermission"
	TypeTriggerSystemAudio  = "triggerSystemAudioPermission"
	TypeCheckMicrophone     = "checkMicrophonePermission"
	TypeRequestMicrophone   = "requestMicrophonePermission"
	TypeEnsureMicrophone    = "ensureMicrophonePermission"
	TypePing                = "ping"
)

// Response types.
const (
	TypeResult = "result"
	TypePong   = "pong"
	TypeError  = "error"
)

// Command is the envelope the UI sends. ID is echoed back so the UI can
// correlate responses.
type Command struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

// Result is the envelope sent back for every command. Granted is set for
// check/ensure operations; OK and Error report request/trigger outcomes.
type Result struct {
	Type    string `json:"type"`
	ID      string `json:"id,omitempty"`
	Op      string `json:"op,omitempty"`
	OK      bool   `json:"ok"`
	Granted *bool  `json:"granted,omitempty"`
	Error   string `json:"error,omitempty"`
}
