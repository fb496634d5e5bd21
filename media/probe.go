package media

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Outcome is the result of a capability probe.
type Outcome int

const (
	Unavailable Outcome = iota
	Full
	VideoOnly
)

func (o Outcome) String() string {
	switch o {
	case Full:
		return "full"
	case VideoOnly:
		return "video-only"
	default:
		return "unavailable"
	}
}

// Strategy is one acquisition attempt of a probe.
type Strategy struct {
	Name        string
	Constraints Constraints
}

// DefaultStrategies tries camera with microphone first, then camera alone.
var DefaultStrategies = []Strategy{
	{Name: "audio+video", Constraints: Constraints{Audio: true, Video: true}},
	{Name: "video-only", Constraints: Constraints{Video: true}},
}

// Probe tries strategies in order and returns the first stream that carries
// video. When every strategy fails it returns Unavailable and an error
// wrapping ErrUnavailable.
func Probe(ctx context.Context, dev Device, strategies []Strategy) (Stream, Outcome, error) {
	var errs []error
	for _, s := range strategies {
		stream, err := dev.Acquire(ctx, s.Constraints)
		if err != nil {
			log.Printf("[MEDIA] probe %s failed: %v", s.Name, err)
			errs = append(errs, fmt.Errorf("%s: %w", s.Name, err))
			continue
		}
		capability := stream.Capability()
		if !capability.HasVideo {
			stream.Close()
			errs = append(errs, fmt.Errorf("%s: no video track", s.Name))
			continue
		}
		outcome := VideoOnly
		if capability.HasAudio {
			outcome = Full
		}
		log.Printf("[MEDIA] probe %s succeeded: %s", s.Name, outcome)
		return stream, outcome, nil
	}
	if len(errs) == 0 {
		return nil, Unavailable, ErrUnavailable
	}
	return nil, Unavailable, fmt.Errorf("%w: %w", ErrUnavailable, errors.Join(errs...))
}
