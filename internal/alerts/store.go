// Package alerts holds the per-view alert snapshot. Each view owns its own
// Store; there is no cross-view cache, and every navigation refetches.
package alerts

import (
	"context"
	"fmt"

	"github.com/junowatch/junowatch/internal/api"
)

// Client is the slice of the API surface the store needs.
type Client interface {
	Alerts(ctx context.Context) ([]api.Alert, error)
	Acknowledge(ctx context.Context, id int) error
}

// Store is a session-scoped snapshot of alerts with acknowledge-in-place
// mutation. The snapshot is not synchronized: Replace, MarkAcknowledged,
// List, and Acknowledge must run on a single goroutine (the UI event
// loop). Fetch and SendAck only talk to the server and may run anywhere.
type Store struct {
	client Client
	alerts []api.Alert
}

// NewStore creates a Store backed by the given client.
func NewStore(client Client) *Store {
	return &Store{client: client}
}

// Fetch retrieves the current alert set from the server without touching
// the local snapshot. Callers on other goroutines use this and hand the
// result back to the event loop for Replace.
func (s *Store) Fetch(ctx context.Context) ([]api.Alert, error) {
	return s.client.Alerts(ctx)
}

// Replace swaps in a new snapshot.
func (s *Store) Replace(alerts []api.Alert) {
	s.alerts = alerts
}

// List fetches the current alert snapshot, replacing the local set
// entirely. On failure the previous snapshot is kept.
func (s *Store) List(ctx context.Context) error {
	alerts, err := s.Fetch(ctx)
	if err != nil {
		return err
	}
	s.Replace(alerts)
	return nil
}

// Alerts returns the current snapshot.
func (s *Store) Alerts() []api.Alert {
	return s.alerts
}

// SendAck acknowledges one alert on the server. Local state is untouched;
// the caller applies MarkAcknowledged on the event loop once it lands.
func (s *Store) SendAck(ctx context.Context, id int) error {
	return s.client.Acknowledge(ctx, id)
}

// MarkAcknowledged flips the local record in place without refetching the
// rest of the snapshot.
func (s *Store) MarkAcknowledged(id int) error {
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Acknowledged = true
			return nil
		}
	}
	return fmt.Errorf("alert %d acknowledged but not in local snapshot", id)
}

// Acknowledge marks one alert acknowledged on the server and, only on
// success, flips the local record. On failure local state is untouched;
// no optimistic update occurred, so there is nothing to roll back.
func (s *Store) Acknowledge(ctx context.Context, id int) error {
	if err := s.SendAck(ctx, id); err != nil {
		return err
	}
	return s.MarkAcknowledged(id)
}
