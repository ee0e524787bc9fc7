package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestServerServesUntilContextEnds(t *testing.T) {
	t.Setenv("TASKTRAIL_DB_PATH", filepath.Join(t.TempDir(), "tasks.db"))
	t.Setenv("TASKTRAIL_AUTH_HMAC_KEY", "")

	server, err := New(0)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	addr := server.Addr()
	if addr == "" {
		t.Fatal("expected listener address")
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx)
	}()

	url := fmt.Sprintf("http://%s/up", addr)
	deadline := time.Now().Add(5 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("health status = %d", resp.StatusCode)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never became reachable: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestNewFailsOnBadStorePath(t *testing.T) {
	// A NUL byte cannot be stored in an environment variable, so block the
	// path with a regular file where a directory is required instead.
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatalf("write blocker file: %v", err)
	}
	t.Setenv("TASKTRAIL_DB_PATH", filepath.Join(blocker, "missing", "tasks.db"))

	if _, err := New(0); err == nil {
		t.Fatal("expected store open error")
	}
}
