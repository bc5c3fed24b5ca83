package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const basePath = "/api"

// Client talks to the monitoring server's REST surface. All methods take a
// context and return wrapped errors; see errors.go for the taxonomy.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// NewClient creates a Client for the given server URL (scheme://host[:port],
// no trailing path). The URL is validated up front.
func NewClient(serverURL string) (*Client, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server URL %q: scheme must be http or https", serverURL)
	}
	return &Client{
		baseURL: strings.TrimRight(serverURL, "/"),
		hc:      &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// SetToken sets the bearer credential attached to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer credential.
func (c *Client) Token() string {
	return c.token
}

// Login authenticates with email/password and stores the returned bearer
// token on the client. The server expects a form-encoded body.
func (c *Client) Login(ctx context.Context, email, password string) (*Token, error) {
	form := url.Values{
		"username": {email},
		"password": {password},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+basePath+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok Token
	if err := c.send(req, &tok); err != nil {
		return nil, err
	}
	c.token = tok.AccessToken
	return &tok, nil
}

// Me returns the account behind the current bearer token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Devices returns the full device list.
func (c *Client) Devices(ctx context.Context) ([]Device, error) {
	var devices []Device
	if err := c.get(ctx, "/devices/", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// Device returns a single device by id.
func (c *Client) Device(ctx context.Context, id int) (*Device, error) {
	var d Device
	if err := c.get(ctx, fmt.Sprintf("/devices/%d", id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDevice registers a new device and returns the created record.
func (c *Client) CreateDevice(ctx context.Context, dc DeviceCreate) (*Device, error) {
	var d Device
	if err := c.post(ctx, "/devices/", dc, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// DeleteDevice removes a device by id.
func (c *Client) DeleteDevice(ctx context.Context, id int) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		c.baseURL+basePath+fmt.Sprintf("/devices/%d", id), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil)
}

// Ping runs a one-shot liveness probe against the device. The probe is
// performed server-side; it does not update last_online or last_check as
// seen by this client until the next refetch.
func (c *Client) Ping(ctx context.Context, id int) (*PingResult, error) {
	var pr PingResult
	if err := c.get(ctx, fmt.Sprintf("/devices/%d/ping", id), &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// Checks returns the check list for a device.
func (c *Client) Checks(ctx context.Context, deviceID int) ([]CheckResult, error) {
	var checks []CheckResult
	if err := c.get(ctx, fmt.Sprintf("/checks/%d", deviceID), &checks); err != nil {
		return nil, err
	}
	return checks, nil
}

// Poll asks the server to run a fresh diagnostic pass for the device.
// Success means the request was accepted, not that the pass completed.
func (c *Client) Poll(ctx context.Context, deviceID int) error {
	return c.post(ctx, fmt.Sprintf("/checks/%d/poll", deviceID), nil, nil)
}

// RunChecks triggers a diagnostic pass and then refetches the device's
// check list. If the trigger succeeds but the refetch fails, the error is
// returned and the caller must keep showing its pre-poll snapshot; the
// remote pass may still have completed and no rollback is attempted.
func (c *Client) RunChecks(ctx context.Context, deviceID int) ([]CheckResult, error) {
	if err := c.Poll(ctx, deviceID); err != nil {
		return nil, fmt.Errorf("trigger poll: %w", err)
	}
	checks, err := c.Checks(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("fetch checks after poll: %w", err)
	}
	return checks, nil
}

// Alerts returns the full alert snapshot.
func (c *Client) Alerts(ctx context.Context) ([]Alert, error) {
	var alerts []Alert
	if err := c.get(ctx, "/alerts/", &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// Acknowledge marks a single alert as acknowledged. Acknowledging an
// already-acknowledged alert is a no-op on the server.
func (c *Client) Acknowledge(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/alerts/%d/ack", id), nil, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+basePath+path, nil)
	if err != nil {
		return err
	}
	return c.send(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+basePath+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

// send executes the request, maps error statuses, and decodes a JSON body
// into out when out is non-nil.
func (c *Client) send(req *http.Request, out any) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", req.URL.Path, err)
	}
	return nil
}

// statusError maps an error response to the client's error taxonomy. The
// server reports a human-readable reason in a {"detail": ...} body.
func (c *Client) statusError(resp *http.Response) error {
	detail := readDetail(resp.Body)
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrAuth, detail)
		}
		return ErrAuth
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if detail != "" {
			return fmt.Errorf("%w: %s", ErrValidation, detail)
		}
		return ErrValidation
	default:
		return &StatusError{Code: resp.StatusCode, Detail: detail}
	}
}

func readDetail(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Detail
}
