package tui

import (
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestSSHServer(t *testing.T, addr string) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = addr
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Level = testLevel()
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("scores database should be open")
	}
	return srv
}

func TestListenAndServeReturnsListenerError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("cannot reserve a port: %v", err)
	}
	defer busy.Close()

	tests := []struct {
		name string
		addr string
	}{
		{"address in use", busy.Addr().String()},
		{"port out of range", "127.0.0.1:99999"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newTestSSHServer(t, tc.addr)

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			select {
			case err := <-errCh:
				if err == nil {
					t.Fatal("ListenAndServe should return the listener error")
				}
			case <-time.After(5 * time.Second):
				srv.Shutdown()
				t.Fatal("ListenAndServe kept blocking after the listener failed")
			}
			if srv.store != nil {
				t.Error("scores database should be closed after a listener error")
			}
		})
	}
}

func TestShutdownClosesStoreAfterServer(t *testing.T) {
	srv := newTestSSHServer(t, "127.0.0.1:0")

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown should close the scores database")
	}
	if err := srv.Shutdown(); err != nil {
		t.Errorf("second Shutdown failed: %v", err)
	}
}
