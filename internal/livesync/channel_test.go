package livesync

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestURLFromServer(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://mon.example.net:8000", "ws://mon.example.net:8000/ws"},
		{"https://mon.example.net", "wss://mon.example.net/ws"},
	}
	for _, tc := range cases {
		got, err := URLFromServer(tc.in)
		if err != nil {
			t.Errorf("URLFromServer(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("URLFromServer(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, err := URLFromServer("ftp://mon.example.net"); err == nil {
		t.Error("URLFromServer() should reject non-http schemes")
	}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func TestChannelConnectsAndDrops(t *testing.T) {
	upgrader := websocket.Upgrader{}
	conns := make(chan *websocket.Conn, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns <- conn
	}))
	defer srv.Close()

	ch := NewChannel("ws" + strings.TrimPrefix(srv.URL, "http"))
	// A long redial keeps the disconnected window observable below.
	ch.redial = 300 * time.Millisecond
	go ch.Run()
	defer ch.Stop()

	if !waitFor(t, 2*time.Second, ch.Connected) {
		t.Fatal("channel never reported connected")
	}

	// Server-side drop returns the channel to disconnected, then the
	// redial brings it back up.
	serverConn := <-conns
	serverConn.Close()
	if !waitFor(t, 2*time.Second, func() bool { return !ch.Connected() }) {
		t.Fatal("channel never noticed the transport drop")
	}
	if !waitFor(t, 2*time.Second, ch.Connected) {
		t.Fatal("channel did not reconnect after transport drop")
	}
}

func TestChannelStaysDisconnectedWithoutServer(t *testing.T) {
	// Point at a server that immediately refuses the upgrade.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no", http.StatusNotFound)
	}))
	defer srv.Close()

	ch := NewChannel("ws" + strings.TrimPrefix(srv.URL, "http"))
	ch.redial = 20 * time.Millisecond
	go ch.Run()
	defer ch.Stop()

	time.Sleep(100 * time.Millisecond)
	if ch.Connected() {
		t.Error("channel reported connected with no realtime endpoint")
	}
}

func TestChannelStop(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	ch := NewChannel("ws" + strings.TrimPrefix(srv.URL, "http"))
	ch.redial = 20 * time.Millisecond
	done := make(chan struct{})
	go func() {
		ch.Run()
		close(done)
	}()

	waitFor(t, 2*time.Second, ch.Connected)
	ch.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}
	if ch.Connected() {
		t.Error("channel still reports connected after Stop")
	}
}
