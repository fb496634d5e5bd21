package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/tmc/lighthouse/internal/helpers"
)

// Audio format recorded by the system device.
const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
)

// ProbeTimeout bounds each device check made by Acquire.
const ProbeTimeout = 5 * time.Second

// SystemDevice captures through OS tools: arecord (Linux) or sox (macOS) for
// the microphone and ffmpeg for camera frames.
type SystemDevice struct {
	AudioDevice  string // arecord -D / sox device; empty for the default
	CameraDevice string // v4l2 path or avfoundation index; empty for the default
	FFmpeg       string // ffmpeg binary; empty to search PATH

	goos     string
	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
	output   func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewSystemDevice returns a device for the running platform.
func NewSystemDevice() *SystemDevice {
	return &SystemDevice{}
}

func (d *SystemDevice) platform() string {
	if d.goos != "" {
		return d.goos
	}
	return runtime.GOOS
}

func (d *SystemDevice) look(name string) (string, error) {
	if d.lookPath != nil {
		return d.lookPath(name)
	}
	return exec.LookPath(name)
}

func (d *SystemDevice) statFile(name string) (os.FileInfo, error) {
	if d.stat != nil {
		return d.stat(name)
	}
	return os.Stat(name)
}

// run executes a capture tool and returns its stdout.
func (d *SystemDevice) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if d.output != nil {
		return d.output(ctx, name, args...)
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %s", filepath.Base(name), err, bytes.TrimSpace(stderr.Bytes()))
	}
	return out, nil
}

func (d *SystemDevice) camera() string {
	if d.CameraDevice != "" {
		return d.CameraDevice
	}
	if d.platform() == "darwin" {
		return "0"
	}
	return "/dev/video0"
}

// audioCommand returns the recorder binary and its arguments for raw
// signed 16-bit little-endian PCM on stdout.
func (d *SystemDevice) audioCommand() (string, []string, error) {
	switch d.platform() {
	case "darwin":
		path, err := d.look("sox")
		if err != nil {
			return "", nil, fmt.Errorf("%w: sox not found - install with: brew install sox", ErrUnavailable)
		}
		input := "-d"
		if d.AudioDevice != "" {
			input = d.AudioDevice
		}
		return path, []string{"-q", input,
			"-t", "raw",
			"-r", fmt.Sprint(SampleRate),
			"-c", fmt.Sprint(Channels),
			"-e", "s",
			"-b", fmt.Sprint(BitsPerSample),
			"-"}, nil
	default:
		path, err := d.look("arecord")
		if err != nil {
			return "", nil, fmt.Errorf("%w: arecord not found - install with: sudo apt-get install alsa-utils", ErrUnavailable)
		}
		args := []string{"-q", "-f", "S16_LE",
			"-r", fmt.Sprint(SampleRate),
			"-c", fmt.Sprint(Channels),
			"-t", "raw"}
		if d.AudioDevice != "" {
			args = append(args, "-D", d.AudioDevice)
		}
		return path, append(args, "-"), nil
	}
}

// frameCommand returns the ffmpeg invocation that writes one MJPEG frame to
// stdout.
func (d *SystemDevice) frameCommand() (string, []string, error) {
	name := d.FFmpeg
	if name == "" {
		name = "ffmpeg"
	}
	path, err := d.look(name)
	if err != nil {
		return "", nil, fmt.Errorf("%w: ffmpeg not found", ErrUnavailable)
	}
	var input []string
	switch d.platform() {
	case "darwin":
		input = []string{"-f", "avfoundation", "-framerate", "30", "-i", d.camera()}
	default:
		if _, err := d.statFile(d.camera()); err != nil {
			return "", nil, fmt.Errorf("%w: camera %s: %w", ErrUnavailable, d.camera(), err)
		}
		input = []string{"-f", "v4l2", "-i", d.camera()}
	}
	args := append([]string{"-hide_banner", "-loglevel", "error"}, input...)
	args = append(args, "-frames:v", "1", "-f", "image2pipe", "-vcodec", "mjpeg", "-")
	return path, args, nil
}

// checkMicrophone verifies that a capture device answers: arecord must list
// a card, sox must read a tenth of a second from the input.
func (d *SystemDevice) checkMicrophone(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()
	switch d.platform() {
	case "darwin":
		input := "-d"
		if d.AudioDevice != "" {
			input = d.AudioDevice
		}
		if _, err := d.run(ctx, path, "-q", input, "-n", "trim", "0", "0.1"); err != nil {
			return fmt.Errorf("%w: microphone: %w", ErrUnavailable, err)
		}
	default:
		out, err := d.run(ctx, path, "-l")
		if err != nil {
			return fmt.Errorf("%w: microphone: %w", ErrUnavailable, err)
		}
		if !bytes.Contains(out, []byte("card ")) {
			return fmt.Errorf("%w: no capture devices", ErrUnavailable)
		}
	}
	return nil
}

// Acquire opens the requested tracks. The microphone must answer and the
// camera must deliver one frame before the stream is returned.
func (d *SystemDevice) Acquire(ctx context.Context, c Constraints) (Stream, error) {
	s := &systemStream{dev: d}
	if c.Video {
		path, args, err := d.frameCommand()
		if err != nil {
			return nil, err
		}
		s.framePath, s.frameArgs = path, args
		s.capability.HasVideo = true
	}
	if c.Audio {
		path, args, err := d.audioCommand()
		if err != nil {
			return nil, err
		}
		s.audioPath, s.audioArgs = path, args
		s.capability.HasAudio = true
	}
	if !s.capability.HasAudio && !s.capability.HasVideo {
		return nil, fmt.Errorf("%w: no tracks requested", ErrUnavailable)
	}
	if s.capability.HasAudio {
		if err := d.checkMicrophone(ctx, s.audioPath); err != nil {
			return nil, err
		}
	}
	if s.capability.HasVideo {
		frameCtx, cancel := context.WithTimeout(ctx, ProbeTimeout)
		_, err := s.CaptureFrame(frameCtx)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: camera %s: %w", ErrUnavailable, d.camera(), err)
		}
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	log.Printf("[MEDIA] acquired %s stream", c)
	return s, nil
}

type systemStream struct {
	dev        *SystemDevice
	capability Capability
	audioPath  string
	audioArgs  []string
	framePath  string
	frameArgs  []string

	mu       sync.Mutex
	ctx      context.Context
	cancel   context.CancelFunc
	recorder *execRecorder
	closed   bool
}

func (s *systemStream) Capability() Capability { return s.capability }

func (s *systemStream) RecordAudio(ctx context.Context) (Recorder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if !s.capability.HasAudio {
		return nil, fmt.Errorf("%w: stream has no audio track", ErrUnavailable)
	}
	if s.recorder != nil && s.recorder.running() {
		return nil, ErrBusy
	}

	cmd := exec.CommandContext(s.ctx, s.audioPath, s.audioArgs...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", s.audioPath, err)
	}
	r := &execRecorder{cmd: cmd, done: make(chan struct{})}
	go r.read(stdout)
	s.recorder = r
	log.Printf("[MEDIA] recording started: %s %v", s.audioPath, s.audioArgs)
	return r, nil
}

func (s *systemStream) CaptureFrame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}
	if !s.capability.HasVideo {
		return nil, fmt.Errorf("%w: stream has no video track", ErrUnavailable)
	}

	out, err := s.dev.run(ctx, s.framePath, s.frameArgs...)
	if err != nil {
		return nil, fmt.Errorf("capture frame: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if helpers.IsMediaTraceEnabled() {
		log.Printf("[MEDIA] captured frame %v (%d bytes)", img.Bounds(), len(out))
	}
	return img, nil
}

func (s *systemStream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.recorder != nil && s.recorder.running() {
		s.recorder.Stop()
	}
	s.cancel()
	log.Println("[MEDIA] stream closed")
	return nil
}

// execRecorder collects PCM from a capture process.
type execRecorder struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	pcm     bytes.Buffer
	readErr error
	stopped bool
}

func (r *execRecorder) read(stdout io.ReadCloser) {
	defer close(r.done)
	defer stdout.Close()

	buffer := make([]byte, 4096)
	for {
		n, err := stdout.Read(buffer)
		if n > 0 {
			r.mu.Lock()
			r.pcm.Write(buffer[:n])
			r.mu.Unlock()
			if helpers.IsMediaTraceEnabled() {
				log.Printf("[MEDIA] captured chunk: %d bytes", n)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, os.ErrClosed) {
				r.mu.Lock()
				r.readErr = err
				r.mu.Unlock()
			}
			return
		}
	}
}

func (r *execRecorder) running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.stopped
}

// Stop interrupts the capture process, waits for it to flush and returns the
// recording wrapped in a WAV header.
func (r *execRecorder) Stop() ([]byte, error) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return nil, ErrNotRecording
	}
	r.stopped = true
	r.mu.Unlock()

	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		log.Printf("[MEDIA] error stopping recording process: %v", err)
		r.cmd.Process.Kill()
	}
	<-r.done
	r.cmd.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.readErr != nil && r.pcm.Len() == 0 {
		return nil, fmt.Errorf("read audio: %w", r.readErr)
	}
	log.Printf("[MEDIA] recording stopped: %d bytes of PCM", r.pcm.Len())
	return helpers.WrapPCM(r.pcm.Bytes(), Channels, SampleRate, BitsPerSample), nil
}
