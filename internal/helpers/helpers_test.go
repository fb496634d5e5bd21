package helpers

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestCreateWavHeader(t *testing.T) {
	tests := []struct {
		name                                 string
		dataSize, channels, sampleRate, bits int
		wantByteRate                         uint32
		wantBlockAlign                       uint16
	}{
		{"mono 16k speech", 32000, 1, 16000, 16, 32000, 2},
		{"stereo 48k", 1000, 2, 48000, 16, 192000, 4},
		{"empty payload", 0, 1, 24000, 16, 48000, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := CreateWavHeader(tt.dataSize, tt.channels, tt.sampleRate, tt.bits)
			if len(h) != 44 {
				t.Fatalf("CreateWavHeader() length = %d, want 44", len(h))
			}
			for _, tag := range []struct {
				off  int
				want string
			}{{0, "RIFF"}, {8, "WAVE"}, {12, "fmt "}, {36, "data"}} {
				if got := string(h[tag.off : tag.off+4]); got != tag.want {
					t.Errorf("header[%d:%d] = %q, want %q", tag.off, tag.off+4, got, tag.want)
				}
			}
			if got := binary.LittleEndian.Uint32(h[4:8]); got != uint32(tt.dataSize+36) {
				t.Errorf("ChunkSize = %d, want %d", got, tt.dataSize+36)
			}
			if got := binary.LittleEndian.Uint16(h[22:24]); got != uint16(tt.channels) {
				t.Errorf("NumChannels = %d, want %d", got, tt.channels)
			}
			if got := binary.LittleEndian.Uint32(h[24:28]); got != uint32(tt.sampleRate) {
				t.Errorf("SampleRate = %d, want %d", got, tt.sampleRate)
			}
			if got := binary.LittleEndian.Uint32(h[28:32]); got != tt.wantByteRate {
				t.Errorf("ByteRate = %d, want %d", got, tt.wantByteRate)
			}
			if got := binary.LittleEndian.Uint16(h[32:34]); got != tt.wantBlockAlign {
				t.Errorf("BlockAlign = %d, want %d", got, tt.wantBlockAlign)
			}
			if got := binary.LittleEndian.Uint32(h[40:44]); got != uint32(tt.dataSize) {
				t.Errorf("Subchunk2Size = %d, want %d", got, tt.dataSize)
			}
		})
	}
}

func TestWrapPCM(t *testing.T) {
	if got := WrapPCM(nil, 1, 16000, 16); got != nil {
		t.Errorf("WrapPCM(nil) = %v, want nil", got)
	}
	pcm := []byte{1, 2, 3, 4}
	wav := WrapPCM(pcm, 1, 16000, 16)
	if len(wav) != 48 {
		t.Fatalf("WrapPCM() length = %d, want 48", len(wav))
	}
	if !bytes.Equal(wav[44:], pcm) {
		t.Errorf("WrapPCM() payload = %v, want %v", wav[44:], pcm)
	}
}

func TestSetMediaTrace(t *testing.T) {
	prev := IsMediaTraceEnabled()
	t.Cleanup(func() { SetMediaTrace(prev) })

	SetMediaTrace(true)
	if !IsMediaTraceEnabled() {
		t.Error("IsMediaTraceEnabled() = false after SetMediaTrace(true)")
	}
	SetMediaTrace(false)
	if IsMediaTraceEnabled() {
		t.Error("IsMediaTraceEnabled() = true after SetMediaTrace(false)")
	}
}
