// Package media reaches the camera and microphone.
//
// A Device hands out Streams. A Stream is owned by whoever acquired it and
// must be closed when that owner is torn down; closing stops every capture
// process the stream started.
package media

import (
	"context"
	"errors"
	"image"
)

var (
	// ErrUnavailable reports that a requested device could not be acquired.
	ErrUnavailable = errors.New("media device unavailable")
	// ErrClosed is returned by operations on a closed stream.
	ErrClosed = errors.New("media stream closed")
	// ErrNotRecording is returned when stopping a recorder that is not running.
	ErrNotRecording = errors.New("not recording")
	// ErrBusy is returned when a stream already has an active recorder.
	ErrBusy = errors.New("recorder already active")
)

// Constraints selects the tracks to acquire.
type Constraints struct {
	Audio bool
	Video bool
}

func (c Constraints) String() string {
	switch {
	case c.Audio && c.Video:
		return "audio+video"
	case c.Video:
		return "video-only"
	case c.Audio:
		return "audio-only"
	default:
		return "none"
	}
}

// Capability describes the tracks a stream actually carries.
type Capability struct {
	HasAudio bool
	HasVideo bool
}

// Device acquires media streams.
type Device interface {
	Acquire(ctx context.Context, c Constraints) (Stream, error)
}

// Stream is an acquired set of tracks.
type Stream interface {
	Capability() Capability
	// RecordAudio starts capturing microphone audio. At most one recorder
	// is active per stream.
	RecordAudio(ctx context.Context) (Recorder, error)
	// CaptureFrame samples the current camera frame.
	CaptureFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// Recorder is an in-progress audio capture.
type Recorder interface {
	// Stop ends the capture and returns the recording as a WAV blob. An empty
	// result with a nil error means nothing was captured.
	Stop() ([]byte, error)
}
