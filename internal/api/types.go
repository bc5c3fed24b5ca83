package api

import (
	"encoding/json"
	"time"
)

// Device is a monitored router as reported by the server.
type Device struct {
	ID           int        `json:"id"`
	Hostname     string     `json:"hostname"`
	IPAddress    string     `json:"ip_address"`
	SSHPort      int        `json:"ssh_port"`
	SSHUsername  string     `json:"ssh_username,omitempty"`
	Model        string     `json:"model,omitempty"`
	SerialNumber string     `json:"serial_number,omitempty"`
	LastOnline   *time.Time `json:"last_online,omitempty"`
	LastCheck    *time.Time `json:"last_check,omitempty"`
}

// DeviceCreate carries the fields for registering a new device.
type DeviceCreate struct {
	Hostname          string `json:"hostname"`
	IPAddress         string `json:"ip_address"`
	SSHPort           int    `json:"ssh_port"`
	SSHUsername       string `json:"ssh_username,omitempty"`
	SSHPassword       string `json:"ssh_password,omitempty"`
	SSHPrivateKeyPath string `json:"ssh_private_key_path,omitempty"`
}

// CheckResult is one diagnostic pass result for a device in a single
// category. Details is left raw; internal/checks decodes it per category.
type CheckResult struct {
	ID        int             `json:"id"`
	Category  string          `json:"category"`
	Status    string          `json:"status"` // ok, warn, error, unknown
	Message   string          `json:"message,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	Details   json.RawMessage `json:"details,omitempty"`
	RawOutput string          `json:"raw_output,omitempty"`
}

// Alert is an operator-facing notification.
type Alert struct {
	ID           int       `json:"id"`
	Severity     string    `json:"severity"` // critical, warning, info
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
	CreatedAt    time.Time `json:"created_at"`
}

// PingResult is the outcome of a one-shot liveness probe. It is never
// persisted; each probe replaces the previous result.
type PingResult struct {
	Online    bool     `json:"online"`
	LatencyMS *float64 `json:"latency_ms,omitempty"`
}

// User is the authenticated account returned by /auth/me.
type User struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"` // viewer, admin
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// Token is the bearer credential issued by /auth/login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
