// Package simstream incrementally consumes the simulator's append-only
// output stream.
//
// The stream is a newline-delimited JSON file written solely by the external
// simulator process. The harness re-reads the whole file on each poll but
// tracks a line offset so already-consumed lines are never handed out twice.
// The output channel is a plain file with no change-notification primitive,
// so waiting is cooperative polling with a short fixed delay.
package simstream

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"time"

	"github.com/MadeInShineA/forest-fire-simulation/internal/fsutil"
)

// DefaultPollInterval is the delay between polls when no new data is
// available and while waiting for the simulator to create the stream file.
const DefaultPollInterval = 50 * time.Millisecond

// Tailer reads newly appended lines from a stream file. One Tailer serves
// exactly one run; a fresh run (with a fresh stream file) needs a fresh Tailer.
type Tailer struct {
	fs   fsutil.FileSystem
	path string

	// consumed counts lines already returned to the caller, including the
	// reserved header offset passed to NewTailer.
	consumed int
}

// NewTailer creates a tailer over path. headerLines is the number of
// leading non-data lines to skip; the simulator stream reserves its first
// line for a header, so callers normally pass 1.
func NewTailer(fs fsutil.FileSystem, path string, headerLines int) *Tailer {
	if headerLines < 0 {
		headerLines = 0
	}
	return &Tailer{fs: fs, path: path, consumed: headerLines}
}

// WaitForFile blocks until the stream file exists or ctx is cancelled. The
// simulator creates the file asynchronously after spawn, so absence right
// after spawn is expected rather than an error.
func (t *Tailer) WaitForFile(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	for {
		if t.fs.Exists(t.path) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// Poll returns lines appended since the previous poll. Only complete,
// newline-terminated lines are returned; a partially flushed final line
// stays in the file and is picked up whole on a later poll. A missing file
// or an absence of new lines yields an empty result, never an error: the
// caller is expected to sleep and re-poll.
func (t *Tailer) Poll() ([]string, error) {
	data, err := t.fs.ReadFile(t.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	lines := completeLines(data)
	if len(lines) <= t.consumed {
		return nil, nil
	}

	fresh := lines[t.consumed:]
	t.consumed += len(fresh)

	out := make([]string, len(fresh))
	for i, l := range fresh {
		out[i] = string(l)
	}
	return out, nil
}

// LinesConsumed reports how many lines (header included) have been handed out.
func (t *Tailer) LinesConsumed() int {
	return t.consumed
}

// completeLines splits data into newline-terminated lines, dropping any
// trailing fragment that has not been terminated yet.
func completeLines(data []byte) [][]byte {
	i := bytes.LastIndexByte(data, '\n')
	if i < 0 {
		return nil
	}
	return bytes.Split(data[:i], []byte{'\n'})
}
