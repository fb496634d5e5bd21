package checkin

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/tmc/lighthouse/media"
)

// Runner performs one check-in without a terminal UI.
type Runner struct {
	Analyzer   Analyzer
	Device     media.Device
	Out        io.Writer // progress output; nil discards
	Interval   time.Duration
	Strategies []media.Strategy
}

// Run probes the camera, records for the countdown and returns the analysis.
// It returns an error only when no camera can be acquired or ctx is done.
func (r *Runner) Run(ctx context.Context) (string, error) {
	out := r.Out
	if out == nil {
		out = io.Discard
	}
	interval := r.Interval
	if interval <= 0 {
		interval = time.Second
	}
	strategies := r.Strategies
	if strategies == nil {
		strategies = media.DefaultStrategies
	}
	if r.Device == nil {
		return "", fmt.Errorf("%s: %w", ErrorMessage, media.ErrUnavailable)
	}

	fmt.Fprintln(out, "Initializing camera...")
	stream, outcome, err := media.Probe(ctx, r.Device, strategies)
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrorMessage, err)
	}
	defer closeStream(stream)

	var rec media.Recorder
	if outcome == media.Full {
		fmt.Fprintf(out, "Say how you're feeling (%ds)\n", Seconds)
		rec, err = stream.RecordAudio(ctx)
		if err != nil {
			log.Printf("[CHECKIN] audio unavailable, visual only: %v", err)
			rec = nil
		}
	} else {
		fmt.Fprintln(out, "(Microphone not detected - Visual only)")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	countdown := NewCountdown(Seconds)
	for !countdown.Done() {
		fmt.Fprintf(out, "%d...\n", countdown.Remaining())
		select {
		case <-ctx.Done():
			stopRecorder(rec)
			return "", ctx.Err()
		case <-ticker.C:
			countdown.Tick()
		}
	}

	fmt.Fprintln(out, "Sensing emotions...")
	return analyze(ctx, r.Analyzer, collect(ctx, stream, rec)), nil
}
