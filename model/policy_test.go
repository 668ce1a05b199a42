package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestParsePolicy accepts every policy name and common spellings.
func TestParsePolicy(t *testing.T) {
	for _, p := range Policies() {
		got, err := ParsePolicy(p.String())
		require.NoError(t, err)
		require.Equal(t, p, got)
	}

	got, err := ParsePolicy(" LHD-Simple ")
	require.NoError(t, err)
	require.Equal(t, PolicyLHDSimple, got)

	_, err = ParsePolicy("clock")
	require.Error(t, err)
}

// TestPolicy_Invalid reports out-of-range ids without panicking.
func TestPolicy_Invalid(t *testing.T) {
	p := Policy(7)
	require.False(t, p.Valid())
	require.Equal(t, "policy(7)", p.String())
	_, err := p.MarshalText()
	require.Error(t, err)
}

// TestPolicyStats_HitRate is zero without samples and bounded by 100.
func TestPolicyStats_HitRate(t *testing.T) {
	require.Equal(t, uint64(0), PolicyStats{}.HitRate())
	require.Equal(t, uint64(100), PolicyStats{Hits: 5}.HitRate())
	require.Equal(t, uint64(33), PolicyStats{Hits: 1, Misses: 2}.HitRate())
}

// TestItem_Segments places only unpromoted S3-FIFO items in the small segment.
func TestItem_Segments(t *testing.T) {
	it := NewItem(10, PolicyS3FIFO)
	require.True(t, it.InSmall())
	require.True(t, it.IsOneTime())
	require.Equal(t, uint64(10), it.AddedAt)
	require.Equal(t, uint64(10), it.LastAccessAt)

	it.InMain = true
	require.False(t, it.InSmall())
	require.False(t, NewItem(0, PolicyLRU).InSmall())

	it.AccessCount = 2
	require.False(t, it.IsOneTime())
}

// TestReason_String names every reason.
func TestReason_String(t *testing.T) {
	require.Equal(t, "sequential access", ReasonSequential.String())
	require.Equal(t, "unknown", Reason(200).String())
}
