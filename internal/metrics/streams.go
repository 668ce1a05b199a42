package metrics

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Streams remembers the last admitted offset per stream, so that interleaved
// sequential readers are each recognised as sequential.
type Streams struct {
	last *lru.Cache[uint64, uint64]
}

// NewStreams keeps the last offset of at most capacity streams.
func NewStreams(capacity int) (*Streams, error) {
	last, err := lru.New[uint64, uint64](capacity)
	if err != nil {
		return nil, fmt.Errorf("stream offsets of capacity %d: %w", capacity, err)
	}
	return &Streams{last: last}, nil
}

// Classify records offset as the latest for stream and reports whether it
// directly follows the previous one. A stream seen for the first time is PatternUnknown.
// Concurrent admits on the same stream may race; the result is an estimate.
func (s *Streams) Classify(stream, offset uint64) Pattern {
	prev, ok := s.last.Get(stream)
	s.last.Add(stream, offset)
	switch {
	case !ok:
		return PatternUnknown
	case offset == prev+1:
		return PatternSequential
	default:
		return PatternRandom
	}
}

func (s *Streams) Len() int { return s.last.Len() }
