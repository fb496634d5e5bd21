// Package mediatest provides scriptable media devices for tests.
package mediatest

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/tmc/lighthouse/media"
)

// Device is a fake media.Device. Grant decides which tracks can be acquired.
type Device struct {
	Grant media.Capability

	AcquireErr error       // fails every acquisition
	RecordErr  error       // returned by Stream.RecordAudio
	Audio      []byte      // returned by Recorder.Stop
	StopErr    error       // returned by Recorder.Stop
	Frame      image.Image // returned by Stream.CaptureFrame
	FrameErr   error

	mu       sync.Mutex
	attempts []media.Constraints
	streams  []*Stream
}

// Acquire records the attempt and grants it when every requested track is
// available.
func (d *Device) Acquire(ctx context.Context, c media.Constraints) (media.Stream, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.attempts = append(d.attempts, c)
	if d.AcquireErr != nil {
		return nil, d.AcquireErr
	}
	if (c.Audio && !d.Grant.HasAudio) || (c.Video && !d.Grant.HasVideo) {
		return nil, fmt.Errorf("%w: %s denied", media.ErrUnavailable, c)
	}
	s := &Stream{dev: d, capability: media.Capability{HasAudio: c.Audio, HasVideo: c.Video}}
	d.streams = append(d.streams, s)
	return s, nil
}

// Attempts returns the constraints of every Acquire call in order.
func (d *Device) Attempts() []media.Constraints {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]media.Constraints(nil), d.attempts...)
}

// Streams returns every stream handed out.
func (d *Device) Streams() []*Stream {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Stream(nil), d.streams...)
}

// OpenStreams counts streams that have not been closed.
func (d *Device) OpenStreams() int {
	n := 0
	for _, s := range d.Streams() {
		if !s.Closed() {
			n++
		}
	}
	return n
}

// Stream is a fake media.Stream.
type Stream struct {
	dev        *Device
	capability media.Capability

	mu        sync.Mutex
	closed    bool
	recording bool
	recorders int
	frames    int
}

func (s *Stream) Capability() media.Capability { return s.capability }

func (s *Stream) RecordAudio(ctx context.Context) (media.Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, media.ErrClosed
	}
	if !s.capability.HasAudio {
		return nil, media.ErrUnavailable
	}
	if s.recording {
		return nil, media.ErrBusy
	}
	if s.dev.RecordErr != nil {
		return nil, s.dev.RecordErr
	}
	s.recording = true
	s.recorders++
	return &Recorder{stream: s}, nil
}

func (s *Stream) CaptureFrame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, media.ErrClosed
	}
	s.frames++
	return s.dev.Frame, s.dev.FrameErr
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.recording = false
	return nil
}

// Closed reports whether Close was called.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Recording reports whether a recorder is active.
func (s *Stream) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recording
}

// Recorders returns how many recorders were started.
func (s *Stream) Recorders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorders
}

// Frames returns how many frames were captured.
func (s *Stream) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Recorder is a fake media.Recorder.
type Recorder struct {
	stream  *Stream
	stopped bool
}

func (r *Recorder) Stop() ([]byte, error) {
	r.stream.mu.Lock()
	defer r.stream.mu.Unlock()
	if r.stopped {
		return nil, media.ErrNotRecording
	}
	r.stopped = true
	r.stream.recording = false
	return r.stream.dev.Audio, r.stream.dev.StopErr
}

// Frame returns a solid w x h image.
func Frame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 60, B: 120, A: 255})
		}
	}
	return img
}
