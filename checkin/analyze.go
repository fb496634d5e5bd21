package checkin

import (
	"context"
	"log"

	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/media"
)

// Analyzer is the sentiment part of the AI gateway.
type Analyzer interface {
	AnalyzeSentiment(ctx context.Context, imageBase64, audioBase64 string) string
}

// payload is what one check-in sends for analysis.
type payload struct {
	image string
	audio string
}

func (p payload) empty() bool { return p.image == "" && p.audio == "" }

// collect finalizes the recorder, if any, and samples one frame from stream.
// Failures leave the corresponding payload empty.
func collect(ctx context.Context, stream media.Stream, rec media.Recorder) payload {
	var p payload
	if rec != nil {
		audio, err := rec.Stop()
		if err != nil {
			log.Printf("[CHECKIN] finalize audio: %v", err)
		}
		p.audio = media.Base64(audio)
	}
	if stream != nil {
		img, err := stream.CaptureFrame(ctx)
		if err != nil {
			log.Printf("[CHECKIN] capture frame: %v", err)
		} else {
			data, err := media.EncodeJPEG(img)
			if err != nil {
				log.Printf("[CHECKIN] encode frame: %v", err)
			}
			p.image = media.Base64(data)
		}
	}
	log.Printf("[CHECKIN] payload: image=%d audio=%d", len(p.image), len(p.audio))
	return p
}

// analyze sends p to the analyzer. An empty payload is answered locally and
// a panicking analyzer degrades to the failure text.
func analyze(ctx context.Context, a Analyzer, p payload) (text string) {
	if p.empty() {
		return api.SentimentNoMedia
	}
	if a == nil {
		return api.SentimentOffline
	}
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[CHECKIN] analyzer panic: %v", r)
			text = api.SentimentFailure
		}
	}()
	return a.AnalyzeSentiment(ctx, p.image, p.audio)
}
