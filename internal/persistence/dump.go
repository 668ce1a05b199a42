// Package persistence stores the all-time per-policy stats between runs, so
// the past-performance fallback of the controller survives restarts.
package persistence

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Borislavv/go-ash-adaptive/config"
	"github.com/Borislavv/go-ash-adaptive/model"
	"github.com/dchest/safefile"
)

var ErrCorrupted = errors.New("policy stats dump is corrupted")

var magic = [4]byte{'A', 'P', 'S', '1'}

// record payload: policy u32 + hits, misses, evictions, time started, time active u64.
const recordSize = 4 + 5*8

type Dumper struct {
	cfg    *config.PersistenceCfg
	logger *slog.Logger
}

func New(cfg *config.PersistenceCfg, logger *slog.Logger) *Dumper {
	return &Dumper{cfg: cfg, logger: logger}
}

// Path is the dump file location.
func (d *Dumper) Path() string {
	name := d.cfg.Name + ".dump"
	if d.cfg.Gzip {
		name += ".gz"
	}
	return filepath.Join(d.cfg.Dir, name)
}

// Dump atomically replaces the dump file with stats.
func (d *Dumper) Dump(stats [model.NumPolicies]model.PolicyStats) error {
	if err := os.MkdirAll(d.cfg.Dir, 0o755); err != nil {
		return fmt.Errorf("create dump dir: %w", err)
	}

	var (
		buf    bytes.Buffer
		writer io.Writer = &buf
		gw     *gzip.Writer
	)
	if d.cfg.Gzip {
		gw = gzip.NewWriter(&buf)
		writer = gw
	}
	if err := encode(writer, stats); err != nil {
		return fmt.Errorf("encode policy stats: %w", err)
	}
	if gw != nil {
		if err := gw.Close(); err != nil {
			return fmt.Errorf("compress policy stats: %w", err)
		}
	}

	path := d.Path()
	if err := safefile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write dump %s: %w", path, err)
	}
	d.logger.Info("policy stats dumped", "path", path, "bytes", buf.Len())
	return nil
}

// Load reads the dump file. A missing file is reported as fs.ErrNotExist,
// any malformed content as ErrCorrupted.
func (d *Dumper) Load() (stats [model.NumPolicies]model.PolicyStats, err error) {
	path := d.Path()
	f, err := os.Open(path)
	if err != nil {
		return stats, fmt.Errorf("open dump %s: %w", path, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if d.cfg.Gzip {
		gzr, err := gzip.NewReader(f)
		if err != nil {
			return stats, fmt.Errorf("%w: %s: %v", ErrCorrupted, path, err)
		}
		defer gzr.Close()
		reader = gzr
	}

	if stats, err = decode(bufio.NewReader(reader)); err != nil {
		return stats, fmt.Errorf("%s: %w", path, err)
	}
	d.logger.Info("policy stats restored", "path", path)
	return stats, nil
}

func encode(w io.Writer, stats [model.NumPolicies]model.PolicyStats) error {
	if _, err := w.Write(magic[:]); err != nil {
		return err
	}
	var (
		meta    [8]byte
		payload [recordSize]byte
	)
	for _, p := range model.Policies() {
		s := stats[p]
		binary.LittleEndian.PutUint32(payload[0:4], uint32(p))
		binary.LittleEndian.PutUint64(payload[4:12], s.Hits)
		binary.LittleEndian.PutUint64(payload[12:20], s.Misses)
		binary.LittleEndian.PutUint64(payload[20:28], s.Evictions)
		binary.LittleEndian.PutUint64(payload[28:36], s.TimeStarted)
		binary.LittleEndian.PutUint64(payload[36:44], s.TimeActive)

		binary.LittleEndian.PutUint32(meta[0:4], recordSize)
		binary.LittleEndian.PutUint32(meta[4:8], crc32.ChecksumIEEE(payload[:]))
		if _, err := w.Write(meta[:]); err != nil {
			return err
		}
		if _, err := w.Write(payload[:]); err != nil {
			return err
		}
	}
	return nil
}

func decode(r io.Reader) (stats [model.NumPolicies]model.PolicyStats, err error) {
	var head [4]byte
	if _, err = io.ReadFull(r, head[:]); err != nil || head != magic {
		return stats, fmt.Errorf("%w: bad header", ErrCorrupted)
	}

	var (
		meta    [8]byte
		payload [recordSize]byte
	)
	for {
		if _, err = io.ReadFull(r, meta[:]); err == io.EOF {
			return stats, nil
		} else if err != nil {
			return stats, fmt.Errorf("%w: read record meta: %v", ErrCorrupted, err)
		}
		if size := binary.LittleEndian.Uint32(meta[0:4]); size != recordSize {
			return stats, fmt.Errorf("%w: record size %d", ErrCorrupted, size)
		}
		if _, err = io.ReadFull(r, payload[:]); err != nil {
			return stats, fmt.Errorf("%w: read record: %v", ErrCorrupted, err)
		}
		if crc32.ChecksumIEEE(payload[:]) != binary.LittleEndian.Uint32(meta[4:8]) {
			return stats, fmt.Errorf("%w: crc mismatch", ErrCorrupted)
		}

		p := model.Policy(binary.LittleEndian.Uint32(payload[0:4]))
		if !p.Valid() {
			return stats, fmt.Errorf("%w: unknown policy %d", ErrCorrupted, uint32(p))
		}
		stats[p] = model.PolicyStats{
			Hits:        binary.LittleEndian.Uint64(payload[4:12]),
			Misses:      binary.LittleEndian.Uint64(payload[12:20]),
			Evictions:   binary.LittleEndian.Uint64(payload[20:28]),
			TimeStarted: binary.LittleEndian.Uint64(payload[28:36]),
			TimeActive:  binary.LittleEndian.Uint64(payload[36:44]),
		}
	}
}
