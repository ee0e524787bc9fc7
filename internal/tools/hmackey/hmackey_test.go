package hmackey

import (
	"bytes"
	"flag"
	"strings"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("hmac-key", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Bytes != 32 {
		t.Fatalf("bytes = %d, want 32", cfg.Bytes)
	}
}

func TestRunWritesHexKey(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	source := strings.NewReader(strings.Repeat("\x01", 32))
	if err := Run(Config{Bytes: 32}, &out, source); err != nil {
		t.Fatalf("run: %v", err)
	}
	want := "TASKTRAIL_AUTH_HMAC_KEY=" + strings.Repeat("01", 32) + "\n"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
}

func TestRunRejectsZeroBytes(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	if err := Run(Config{Bytes: 0}, &out, nil); err == nil {
		t.Fatal("expected error for zero bytes")
	}
}
