package alerts

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/junowatch/junowatch/internal/api"
)

type fakeClient struct {
	alerts   []api.Alert
	listErr  error
	ackErr   error
	ackCalls []int
}

func (f *fakeClient) Alerts(ctx context.Context) ([]api.Alert, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]api.Alert, len(f.alerts))
	copy(out, f.alerts)
	return out, nil
}

func (f *fakeClient) Acknowledge(ctx context.Context, id int) error {
	f.ackCalls = append(f.ackCalls, id)
	return f.ackErr
}

func sampleAlerts() []api.Alert {
	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return []api.Alert{
		{ID: 3, Severity: "warning", Message: "ISIS: adjacency down", CreatedAt: created},
		{ID: 7, Severity: "critical", Message: "BGP: neighbors down", CreatedAt: created},
		{ID: 9, Severity: "info", Message: "device added", Acknowledged: true, CreatedAt: created},
	}
}

func TestListReplacesSnapshot(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)

	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(s.Alerts()) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(s.Alerts()))
	}

	fc.alerts = fc.alerts[:1]
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(s.Alerts()) != 1 {
		t.Errorf("snapshot not replaced: got %d alerts, want 1", len(s.Alerts()))
	}
}

func TestListFailureKeepsSnapshot(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}

	fc.listErr = errors.New("connection refused")
	if err := s.List(context.Background()); err == nil {
		t.Fatal("List() should fail")
	}
	if len(s.Alerts()) != 3 {
		t.Errorf("snapshot lost on failed refresh: got %d alerts, want 3", len(s.Alerts()))
	}
}

func TestAcknowledgeMutatesOneRecord(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	before := make([]api.Alert, len(s.Alerts()))
	copy(before, s.Alerts())

	if err := s.Acknowledge(context.Background(), 7); err != nil {
		t.Fatalf("Acknowledge() error: %v", err)
	}

	for i, a := range s.Alerts() {
		want := before[i]
		if a.ID == 7 {
			want.Acknowledged = true
		}
		if !reflect.DeepEqual(a, want) {
			t.Errorf("alert %d changed unexpectedly: got %+v, want %+v", a.ID, a, want)
		}
	}
	if got := fc.ackCalls; len(got) != 1 || got[0] != 7 {
		t.Errorf("expected one ack call for id 7, got %v", got)
	}
}

func TestFetchLeavesSnapshotUntouched(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}

	fc.alerts = fc.alerts[:1]
	got, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Fetch() returned %d alerts, want 1", len(got))
	}
	if len(s.Alerts()) != 3 {
		t.Errorf("Fetch() mutated the snapshot: got %d alerts, want 3", len(s.Alerts()))
	}

	s.Replace(got)
	if len(s.Alerts()) != 1 {
		t.Errorf("Replace() did not swap the snapshot: got %d alerts, want 1", len(s.Alerts()))
	}
}

func TestSendAckLeavesSnapshotUntouched(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if err := s.SendAck(context.Background(), 7); err != nil {
		t.Fatalf("SendAck() error: %v", err)
	}
	for _, a := range s.Alerts() {
		if a.ID == 7 && a.Acknowledged {
			t.Error("SendAck() flipped the local record; that is MarkAcknowledged's job")
		}
	}

	if err := s.MarkAcknowledged(7); err != nil {
		t.Fatalf("MarkAcknowledged() error: %v", err)
	}
	for _, a := range s.Alerts() {
		if a.ID == 7 && !a.Acknowledged {
			t.Error("MarkAcknowledged(7) did not flip the record")
		}
	}
	if err := s.MarkAcknowledged(404); err == nil {
		t.Error("MarkAcknowledged() should fail for an unknown id")
	}
}

func TestAcknowledgeFailureLeavesStateUnchanged(t *testing.T) {
	fc := &fakeClient{alerts: sampleAlerts()}
	s := NewStore(fc)
	if err := s.List(context.Background()); err != nil {
		t.Fatalf("List() error: %v", err)
	}

	fc.ackErr = errors.New("timeout")
	if err := s.Acknowledge(context.Background(), 7); err == nil {
		t.Fatal("Acknowledge() should fail")
	}
	for _, a := range s.Alerts() {
		if a.ID == 7 && a.Acknowledged {
			t.Error("alert 7 acknowledged locally despite server failure")
		}
	}
}
