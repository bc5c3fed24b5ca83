package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatalf("NewClient() error: %v", err)
	}
	return c, srv
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, u := range []string{"", "mon.example.net", "ftp://mon.example.net"} {
		if _, err := NewClient(u); err == nil {
			t.Errorf("NewClient(%q) should fail", u)
		}
	}
}

func TestDevicesSendsBearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/api/devices/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"hostname":"edge-rtr-1","ip_address":"198.51.100.1","ssh_port":22}]`))
	}))
	c.SetToken("tok-xyz")

	devices, err := c.Devices(context.Background())
	if err != nil {
		t.Fatalf("Devices() error: %v", err)
	}
	if gotAuth != "Bearer tok-xyz" {
		t.Errorf("Authorization = %q, want %q", gotAuth, "Bearer tok-xyz")
	}
	if len(devices) != 1 || devices[0].Hostname != "edge-rtr-1" {
		t.Errorf("unexpected devices: %+v", devices)
	}
}

func TestDeviceNotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail":"Device not found"}`))
	}))

	_, err := c.Device(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Device() of missing id: got %v, want ErrNotFound", err)
	}
}

func TestAuthRejectedMapsToErrAuth(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))

	_, err := c.Me(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Errorf("Me() with rejected credential: got %v, want ErrAuth", err)
	}
}

func TestCreateDeviceValidationRejected(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"hostname already registered"}`))
	}))

	_, err := c.CreateDevice(context.Background(), DeviceCreate{Hostname: "dup"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("CreateDevice() rejected: got %v, want ErrValidation", err)
	}
}

func TestLoginSetsToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/auth/login" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("ParseForm() error: %v", err)
		}
		if r.PostForm.Get("username") != "noc@example.net" {
			t.Errorf("username = %q", r.PostForm.Get("username"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok-new","token_type":"bearer"}`))
	}))

	tok, err := c.Login(context.Background(), "noc@example.net", "hunter2")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	if tok.AccessToken != "tok-new" {
		t.Errorf("AccessToken = %q, want tok-new", tok.AccessToken)
	}
	if c.Token() != "tok-new" {
		t.Errorf("client token = %q, want tok-new", c.Token())
	}
}

func TestRunChecksReportsRefetchFailure(t *testing.T) {
	var polled bool
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/checks/5/poll":
			polled = true
			w.WriteHeader(http.StatusAccepted)
		case r.Method == http.MethodGet && r.URL.Path == "/api/checks/5":
			// The trigger succeeded but the refetch fails.
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"detail":"database locked"}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	_, err := c.RunChecks(context.Background(), 5)
	if err == nil {
		t.Fatal("RunChecks() should report failure when the refetch fails")
	}
	if !polled {
		t.Error("poll trigger was never issued")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusInternalServerError {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunChecksTwoStep(t *testing.T) {
	var order []string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/checks/5/poll":
			order = append(order, "poll")
			w.WriteHeader(http.StatusAccepted)
		case r.Method == http.MethodGet && r.URL.Path == "/api/checks/5":
			order = append(order, "fetch")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":10,"category":"bgp","status":"ok","created_at":"2025-06-01T12:00:00Z"}]`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	checks, err := c.RunChecks(context.Background(), 5)
	if err != nil {
		t.Fatalf("RunChecks() error: %v", err)
	}
	if len(checks) != 1 || checks[0].Category != "bgp" {
		t.Errorf("unexpected checks: %+v", checks)
	}
	if len(order) != 2 || order[0] != "poll" || order[1] != "fetch" {
		t.Errorf("request order = %v, want [poll fetch]", order)
	}
}

func TestAcknowledge(t *testing.T) {
	var gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"acknowledged"}`))
	}))

	if err := c.Acknowledge(context.Background(), 7); err != nil {
		t.Fatalf("Acknowledge() error: %v", err)
	}
	if gotPath != "POST /api/alerts/7/ack" {
		t.Errorf("request = %q, want POST /api/alerts/7/ack", gotPath)
	}
}

func TestPing(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/devices/3/ping" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"online":true,"latency_ms":12.5}`))
	}))

	pr, err := c.Ping(context.Background(), 3)
	if err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	if !pr.Online || pr.LatencyMS == nil || *pr.LatencyMS != 12.5 {
		t.Errorf("unexpected ping result: %+v", pr)
	}
}
