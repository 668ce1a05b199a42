package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestStreams_FirstAdmitIsUnknown has no predecessor to compare against.
func TestStreams_FirstAdmitIsUnknown(t *testing.T) {
	s, err := NewStreams(16)
	require.NoError(t, err)

	require.Equal(t, PatternUnknown, s.Classify(1, 100))
	require.Equal(t, PatternSequential, s.Classify(1, 101))
	require.Equal(t, PatternRandom, s.Classify(1, 500))
	require.Equal(t, PatternSequential, s.Classify(1, 501))
}

// TestStreams_InterleavedStreamsStaySequential keys offsets per stream.
func TestStreams_InterleavedStreamsStaySequential(t *testing.T) {
	s, err := NewStreams(16)
	require.NoError(t, err)

	s.Classify(1, 0)
	s.Classify(2, 1000)
	for off := uint64(1); off < 100; off++ {
		require.Equal(t, PatternSequential, s.Classify(1, off))
		require.Equal(t, PatternSequential, s.Classify(2, 1000+off))
	}
	require.Equal(t, 2, s.Len())
}

// TestStreams_Bounded forgets the stalest stream.
func TestStreams_Bounded(t *testing.T) {
	s, err := NewStreams(2)
	require.NoError(t, err)

	s.Classify(1, 0)
	s.Classify(2, 0)
	s.Classify(3, 0)
	require.Equal(t, 2, s.Len())
	require.Equal(t, PatternUnknown, s.Classify(1, 1), "forgotten stream starts over")
}

// TestStreams_InvalidCapacity is an initialization failure.
func TestStreams_InvalidCapacity(t *testing.T) {
	_, err := NewStreams(-1)
	require.Error(t, err)
}
