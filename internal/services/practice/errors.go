package practice

import "errors"

var (
	ErrCaptureUnavailable   = errors.New("microphone access is unavailable")
	ErrAlreadyRecording     = errors.New("a recording is already in progress")
	ErrNotRecording         = errors.New("no recording in progress")
	ErrNoRecordingAvailable = errors.New("no recording available")
	ErrPlaybackInProgress   = errors.New("playback already in progress")
	ErrInvalidTransition    = errors.New("action not allowed in the current state")
	ErrUnknownScenario      = errors.New("unknown scenario")
	ErrSessionNotFound      = errors.New("session not found")
)
