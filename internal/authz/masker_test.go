package authz

import (
	"bytes"
	"testing"
)

func TestRedactingWriter_Basic(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRedactingWriter(&buf, "hunter2", "ghp_token")

	rw.Write([]byte("password=hunter2 token=ghp_token done"))
	rw.Flush()

	got := buf.String()
	want := "password=[REDACTED] token=[REDACTED] done"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRedactingWriter_ChunkBoundary(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRedactingWriter(&buf, "MYPASSWORD")

	// Split the value across two writes
	rw.Write([]byte("prefix MYPASS"))
	rw.Write([]byte("WORD suffix"))
	rw.Flush()

	got := buf.String()
	want := "prefix [REDACTED] suffix"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRedactingWriter_NoValues(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRedactingWriter(&buf)

	rw.Write([]byte("passthrough"))
	rw.Flush()

	if got := buf.String(); got != "passthrough" {
		t.Fatalf("got %q, want %q", got, "passthrough")
	}
}

func TestRedactingWriter_RepeatedMatches(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRedactingWriter(&buf, "AAA", "BBB")

	rw.Write([]byte("AAA and BBB and AAA"))
	rw.Flush()

	got := buf.String()
	want := "[REDACTED] and [REDACTED] and [REDACTED]"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRedactingWriter_EmptyValuesIgnored(t *testing.T) {
	var buf bytes.Buffer
	rw := NewRedactingWriter(&buf, "", "SECRET", "")

	rw.Write([]byte("hello SECRET world"))
	rw.Flush()

	got := buf.String()
	want := "hello [REDACTED] world"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
