package tasks

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Port)
	}
}

func TestParseConfigEnvDefault(t *testing.T) {
	t.Setenv("TASKTRAIL_TASKS_PORT", "9001")

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9001 {
		t.Fatalf("expected env port 9001, got %d", cfg.Port)
	}
}

func TestParseConfigFlagOverridesEnv(t *testing.T) {
	t.Setenv("TASKTRAIL_TASKS_PORT", "9001")

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-port", "9100"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Port != 9100 {
		t.Fatalf("expected flag port 9100, got %d", cfg.Port)
	}
}

func TestParseConfigRejectsInvalidEnvPort(t *testing.T) {
	t.Setenv("TASKTRAIL_TASKS_PORT", "not-a-port")

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected error for non-numeric port")
	}
}
