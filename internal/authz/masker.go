package authz

import (
	"io"
	"sync"

	aho "github.com/petar-dambovaliev/aho-corasick"
)

const redacted = "[REDACTED]"

// RedactingWriter wraps an io.Writer and replaces every occurrence of the
// given credential values (passwords, OTP codes, minted tokens) with
// [REDACTED]. Verbose CLI output is routed through one of these so a debug
// dump can never leak a secret.
//
// Matching uses Aho-Corasick so any number of values costs one pass, and
// writes are buffered just enough to catch values split across Write calls.
type RedactingWriter struct {
	mu      sync.Mutex
	sink    io.Writer
	matcher aho.AhoCorasick
	values  []string
	longest int
	pending []byte
}

// NewRedactingWriter returns a writer redacting all non-empty values. With
// no values to hide, writes pass through untouched.
func NewRedactingWriter(sink io.Writer, values ...string) *RedactingWriter {
	rw := &RedactingWriter{sink: sink}
	for _, v := range values {
		if v == "" {
			continue // empty patterns match everywhere and break the hold-back arithmetic
		}
		rw.values = append(rw.values, v)
		if len(v) > rw.longest {
			rw.longest = len(v)
		}
	}
	if len(rw.values) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{})
		rw.matcher = builder.Build(rw.values)
	}
	return rw
}

// Write implements io.Writer. Up to longest-1 trailing bytes may be held
// back until the next Write or Flush, in case a value straddles the
// boundary.
func (rw *RedactingWriter) Write(p []byte) (int, error) {
	if len(rw.values) == 0 {
		return rw.sink.Write(p)
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	rw.pending = append(rw.pending, p...)
	if err := rw.emit(false); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Flush forces out any held-back bytes, redacting matches in them.
func (rw *RedactingWriter) Flush() error {
	if len(rw.values) == 0 {
		return nil
	}

	rw.mu.Lock()
	defer rw.mu.Unlock()

	return rw.emit(true)
}

func (rw *RedactingWriter) emit(all bool) error {
	if len(rw.pending) == 0 {
		return nil
	}

	// Bytes beyond safe may still be the start of a match, so they stay
	// pending unless we are flushing everything.
	safe := len(rw.pending)
	if !all {
		safe = len(rw.pending) - (rw.longest - 1)
		if safe <= 0 {
			return nil
		}
	}

	// Scan the whole pending buffer so a match straddling the safe
	// boundary is seen now rather than emitted half-redacted.
	matches := rw.matcher.FindAll(string(rw.pending))

	var out []byte
	pos := 0
	consumed := safe

	for _, m := range matches {
		if m.Start() < pos {
			continue // overlaps a match already redacted
		}
		if m.Start() >= safe && !all {
			break // entirely in the held-back zone; handled next round
		}
		out = append(out, rw.pending[pos:m.Start()]...)
		out = append(out, redacted...)
		pos = m.End()
		if m.End() > consumed {
			consumed = m.End()
		}
	}

	if pos < safe {
		out = append(out, rw.pending[pos:safe]...)
	}

	if len(out) > 0 {
		if _, err := rw.sink.Write(out); err != nil {
			return err
		}
	}

	rest := make([]byte, len(rw.pending)-consumed)
	copy(rest, rw.pending[consumed:])
	rw.pending = rest
	return nil
}
