package inmemory

import (
	"testing"

	"blockgrid/internal/app/ports"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordAccepted()
	r.RecordAccepted()
	r.RecordRejected("world_not_found")
	r.RecordRejected("coordinate_out_of_bounds")
	r.RecordRejected("world_not_found")

	s := r.Snapshot()
	if s.EncodeTotal != 5 {
		t.Fatalf("expected total 5, got %d", s.EncodeTotal)
	}
	if s.EncodeAccepted != 2 || s.EncodeRejected != 3 {
		t.Fatalf("unexpected counters: %+v", s)
	}
	if s.RejectedByCode["world_not_found"] != 2 || s.RejectedByCode["coordinate_out_of_bounds"] != 1 {
		t.Fatalf("unexpected by-code counters: %+v", s.RejectedByCode)
	}
	if s.Sessions != nil {
		t.Fatalf("expected no session stats without a source, got %v", s.Sessions)
	}
}

func TestRecorderSnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.RecordRejected("invalid_key")
	s := r.Snapshot()
	s.RejectedByCode["invalid_key"] = 100
	if got := r.Snapshot().RejectedByCode["invalid_key"]; got != 1 {
		t.Fatalf("snapshot mutation leaked into recorder: %d", got)
	}
}

func TestRecorderIncludesSessions(t *testing.T) {
	r := NewRecorder().WithSessions(func() any { return map[string]int{"active": 2} })
	s := r.Snapshot()
	m, ok := s.Sessions.(map[string]int)
	if !ok || m["active"] != 2 {
		t.Fatalf("unexpected sessions payload: %#v", s.Sessions)
	}
}

var _ ports.EncodeMetrics = (*Recorder)(nil)
