// Package helpers holds small shared pieces of the media pipeline.
package helpers

import (
	"encoding/binary"
	"log"
	"os"
	"sync/atomic"
)

var mediaTraceEnabled atomic.Bool

func init() {
	if os.Getenv("LIGHTHOUSE_MEDIA_TRACE") == "1" {
		mediaTraceEnabled.Store(true)
		log.Println("[MEDIA] capture tracing enabled (LIGHTHOUSE_MEDIA_TRACE=1)")
	}
}

// IsMediaTraceEnabled reports whether per-chunk capture tracing is on.
func IsMediaTraceEnabled() bool {
	return mediaTraceEnabled.Load()
}

// SetMediaTrace turns capture tracing on or off.
func SetMediaTrace(on bool) {
	mediaTraceEnabled.Store(on)
}

// CreateWavHeader returns the 44 byte RIFF/WAVE header for a PCM payload of
// dataSize bytes.
func CreateWavHeader(dataSize, numChannels, sampleRate, bitsPerSample int) []byte {
	header := make([]byte, 44)
	byteRate := uint32(sampleRate * numChannels * bitsPerSample / 8)
	blockAlign := uint16(numChannels * bitsPerSample / 8)

	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], uint32(dataSize+36))
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(header[22:24], uint16(numChannels))
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], uint16(bitsPerSample))

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], uint32(dataSize))
	return header
}

// WrapPCM prepends a WAV header to raw PCM samples. Empty input yields nil.
func WrapPCM(pcm []byte, numChannels, sampleRate, bitsPerSample int) []byte {
	if len(pcm) == 0 {
		return nil
	}
	out := make([]byte, 0, 44+len(pcm))
	out = append(out, CreateWavHeader(len(pcm), numChannels, sampleRate, bitsPerSample)...)
	return append(out, pcm...)
}
