// Package livesync maintains the single process-wide connection to the
// server's realtime endpoint. The only signal consumed here is
// connectivity: views read a boolean badge, nothing more. Per-device
// freshness is derived from timestamps and is deliberately independent of
// this channel.
package livesync

import (
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const defaultRedial = 5 * time.Second

// Channel is the connectivity tracker. It starts Disconnected and stays
// that way until the first successful dial; a transport drop returns it to
// Disconnected until the next redial succeeds. No heartbeat or timeout
// logic lives at this layer.
type Channel struct {
	url    string
	redial time.Duration
	dialer *websocket.Dialer

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool

	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewChannel creates a Channel for the given ws:// or wss:// URL.
func NewChannel(wsURL string) *Channel {
	return &Channel{
		url:    wsURL,
		redial: defaultRedial,
		dialer: &websocket.Dialer{HandshakeTimeout: 5 * time.Second},
		stopCh: make(chan struct{}),
	}
}

// URLFromServer derives the realtime endpoint URL from the server's HTTP
// base URL.
func URLFromServer(serverURL string) (string, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	u.Path = "/ws"
	return u.String(), nil
}

// Run dials the endpoint and holds the connection for the life of the
// process, redialing after drops. It blocks until Stop is called.
func (c *Channel) Run() {
	for {
		select {
		case <-c.stopCh:
			return
		default:
		}

		conn, resp, err := c.dialer.Dial(c.url, nil)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		if err != nil {
			if !c.wait() {
				return
			}
			continue
		}

		c.mu.Lock()
		c.conn = conn
		c.connected = true
		c.mu.Unlock()

		// Drain until the transport drops. Messages are not consumed at
		// this layer.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		conn.Close()

		c.mu.Lock()
		c.conn = nil
		c.connected = false
		c.mu.Unlock()

		if !c.wait() {
			return
		}
	}
}

// Connected reports whether the realtime transport is currently up.
func (c *Channel) Connected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// Stop tears the connection down and ends the Run loop.
func (c *Channel) Stop() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	c.mu.Lock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.connected = false
	c.mu.Unlock()
}

// wait sleeps for the redial interval, returning false if Stop was called.
func (c *Channel) wait() bool {
	select {
	case <-c.stopCh:
		return false
	case <-time.After(c.redial):
		return true
	}
}
