package media

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeTools(tools ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, t := range tools {
			if t == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("not found")
	}
}

// fakeOutput stands in for the capture tools run by SystemDevice.
type fakeOutput struct {
	frameErr error
	micErr   error
	noCards  bool

	mu    sync.Mutex
	calls []string
}

func (f *fakeOutput) run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, filepath.Base(name)+" "+strings.Join(args, " "))
	f.mu.Unlock()
	switch filepath.Base(name) {
	case "arecord":
		if f.noCards {
			return []byte("**** List of CAPTURE Hardware Devices ****\n"), f.micErr
		}
		return []byte("**** List of CAPTURE Hardware Devices ****\ncard 0: PCH [HDA Intel PCH], device 0: ALC3246 Analog\n"), f.micErr
	case "sox":
		return nil, f.micErr
	default:
		if f.frameErr != nil {
			return nil, f.frameErr
		}
		return EncodeJPEG(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	}
}

func (f *fakeOutput) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func statOK(string) (os.FileInfo, error)      { return nil, nil }
func statMissing(string) (os.FileInfo, error) { return nil, fs.ErrNotExist }

func TestSystemDeviceAcquire(t *testing.T) {
	tests := []struct {
		name    string
		dev     *SystemDevice
		c       Constraints
		want    Capability
		wantErr bool
	}{
		{
			name: "linux full",
			dev:  &SystemDevice{goos: "linux", lookPath: fakeTools("arecord", "ffmpeg"), stat: statOK},
			c:    Constraints{Audio: true, Video: true},
			want: Capability{HasAudio: true, HasVideo: true},
		},
		{
			name:    "linux no arecord",
			dev:     &SystemDevice{goos: "linux", lookPath: fakeTools("ffmpeg"), stat: statOK},
			c:       Constraints{Audio: true, Video: true},
			wantErr: true,
		},
		{
			name: "linux video only without arecord",
			dev:  &SystemDevice{goos: "linux", lookPath: fakeTools("ffmpeg"), stat: statOK},
			c:    Constraints{Video: true},
			want: Capability{HasVideo: true},
		},
		{
			name:    "linux no camera node",
			dev:     &SystemDevice{goos: "linux", lookPath: fakeTools("arecord", "ffmpeg"), stat: statMissing},
			c:       Constraints{Video: true},
			wantErr: true,
		},
		{
			name: "darwin microphone",
			dev:  &SystemDevice{goos: "darwin", lookPath: fakeTools("sox")},
			c:    Constraints{Audio: true},
			want: Capability{HasAudio: true},
		},
		{
			name: "darwin camera without frames",
			dev: &SystemDevice{goos: "darwin", lookPath: fakeTools("sox", "ffmpeg"),
				output: (&fakeOutput{frameErr: errors.New("exit status 1")}).run},
			c:       Constraints{Video: true},
			wantErr: true,
		},
		{
			name: "darwin microphone not answering",
			dev: &SystemDevice{goos: "darwin", lookPath: fakeTools("sox", "ffmpeg"),
				output: (&fakeOutput{micErr: errors.New("no default audio device")}).run},
			c:       Constraints{Audio: true, Video: true},
			wantErr: true,
		},
		{
			name: "linux no capture cards",
			dev: &SystemDevice{goos: "linux", lookPath: fakeTools("arecord", "ffmpeg"), stat: statOK,
				output: (&fakeOutput{noCards: true}).run},
			c:       Constraints{Audio: true},
			wantErr: true,
		},
		{
			name:    "nothing requested",
			dev:     &SystemDevice{goos: "linux", lookPath: fakeTools()},
			c:       Constraints{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.dev.output == nil {
				tt.dev.output = (&fakeOutput{}).run
			}
			s, err := tt.dev.Acquire(context.Background(), tt.c)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnavailable)
				return
			}
			require.NoError(t, err)
			defer s.Close()
			assert.Equal(t, tt.want, s.Capability())
		})
	}
}

func TestSystemDeviceCommands(t *testing.T) {
	linux := &SystemDevice{goos: "linux", AudioDevice: "hw:1", lookPath: fakeTools("arecord", "ffmpeg"), stat: statOK}
	path, args, err := linux.audioCommand()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/arecord", path)
	assert.Equal(t, "-q -f S16_LE -r 16000 -c 1 -t raw -D hw:1 -", strings.Join(args, " "))

	path, args, err = linux.frameCommand()
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/ffmpeg", path)
	assert.Equal(t, "-hide_banner -loglevel error -f v4l2 -i /dev/video0 -frames:v 1 -f image2pipe -vcodec mjpeg -", strings.Join(args, " "))

	mac := &SystemDevice{goos: "darwin", FFmpeg: "ffmpeg7", lookPath: fakeTools("sox", "ffmpeg7")}
	_, args, err = mac.frameCommand()
	require.NoError(t, err)
	assert.Contains(t, strings.Join(args, " "), "-f avfoundation -framerate 30 -i 0")
	_, args, err = mac.audioCommand()
	require.NoError(t, err)
	assert.Equal(t, "-q -d -t raw -r 16000 -c 1 -e s -b 16 -", strings.Join(args, " "))
}

func TestSystemDeviceAcquireGrabsFrame(t *testing.T) {
	out := &fakeOutput{}
	dev := &SystemDevice{goos: "darwin", lookPath: fakeTools("sox", "ffmpeg"), output: out.run}
	s, err := dev.Acquire(context.Background(), Constraints{Audio: true, Video: true})
	require.NoError(t, err)
	defer s.Close()

	calls := out.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "sox -q -d -n trim 0 0.1", calls[0])
	assert.True(t, strings.HasPrefix(calls[1], "ffmpeg "), "second call = %q", calls[1])

	img, err := s.CaptureFrame(context.Background())
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
}

func TestSystemStreamClosed(t *testing.T) {
	dev := &SystemDevice{goos: "linux", lookPath: fakeTools("arecord", "ffmpeg"), stat: statOK, output: (&fakeOutput{}).run}
	s, err := dev.Acquire(context.Background(), Constraints{Audio: true, Video: true})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.RecordAudio(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
	_, err = s.CaptureFrame(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
