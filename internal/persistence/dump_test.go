package persistence

import (
	"io/fs"
	"os"
	"testing"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/internal/testing/help"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/stretchr/testify/require"
)

func sampleStats() (s [model.NumPolicies]model.PolicyStats) {
	s[model.PolicyMRU] = model.PolicyStats{Hits: 10, Misses: 90, Evictions: 80, TimeActive: 1000}
	s[model.PolicyS3FIFO] = model.PolicyStats{Hits: 700, Misses: 300, Evictions: 250, TimeStarted: 1000, TimeActive: 5000}
	return s
}

// TestDumper_DumpAndLoad restores exactly what was dumped, with and without gzip.
func TestDumper_DumpAndLoad(t *testing.T) {
	for _, gz := range []bool{false, true} {
		d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats", Gzip: gz}, help.Logger())
		require.NoError(t, d.Dump(sampleStats()))

		got, err := d.Load()
		require.NoError(t, err)
		require.Equal(t, sampleStats(), got)
	}
}

// TestDumper_DumpOverwrites replaces the previous dump.
func TestDumper_DumpOverwrites(t *testing.T) {
	d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats"}, help.Logger())
	require.NoError(t, d.Dump(sampleStats()))

	var next [model.NumPolicies]model.PolicyStats
	next[model.PolicyLRU].Hits = 1
	require.NoError(t, d.Dump(next))

	got, err := d.Load()
	require.NoError(t, err)
	require.Equal(t, next, got)
}

// TestDumper_LoadMissing reports a missing dump as fs.ErrNotExist.
func TestDumper_LoadMissing(t *testing.T) {
	d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats"}, help.Logger())
	_, err := d.Load()
	require.ErrorIs(t, err, fs.ErrNotExist)
}

// TestDumper_LoadCorrupted detects a flipped byte.
func TestDumper_LoadCorrupted(t *testing.T) {
	d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats"}, help.Logger())
	require.NoError(t, d.Dump(sampleStats()))

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF
	require.NoError(t, os.WriteFile(d.Path(), data, 0o644))

	_, err = d.Load()
	require.ErrorIs(t, err, ErrCorrupted)
}

// TestDumper_LoadForeignFile rejects a file without the dump header.
func TestDumper_LoadForeignFile(t *testing.T) {
	d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats"}, help.Logger())
	require.NoError(t, os.WriteFile(d.Path(), []byte("not a dump"), 0o644))

	_, err := d.Load()
	require.ErrorIs(t, err, ErrCorrupted)
}

// TestDumper_LoadTruncated rejects a partial record.
func TestDumper_LoadTruncated(t *testing.T) {
	d := New(&config.PersistenceCfg{Dir: t.TempDir(), Name: "stats"}, help.Logger())
	require.NoError(t, d.Dump(sampleStats()))

	data, err := os.ReadFile(d.Path())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(d.Path(), data[:len(data)-10], 0o644))

	_, err = d.Load()
	require.ErrorIs(t, err, ErrCorrupted)
}
