package inmemory

import (
	"sync"
)

type Snapshot struct {
	EncodeTotal    uint64            `json:"encode_total"`
	EncodeAccepted uint64            `json:"encode_accepted"`
	EncodeRejected uint64            `json:"encode_rejected"`
	RejectedByCode map[string]uint64 `json:"rejected_by_code"`
	Sessions       any               `json:"sessions,omitempty"`
}

// Recorder keeps encoder counters for the /ops/kpi endpoint. Counters reset
// with the process.
type Recorder struct {
	mu       sync.Mutex
	accepted uint64
	rejected uint64
	byCode   map[string]uint64

	sessions func() any
}

func NewRecorder() *Recorder {
	return &Recorder{
		byCode: map[string]uint64{},
	}
}

// WithSessions attaches a session stats source to every snapshot.
func (r *Recorder) WithSessions(fn func() any) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = fn
	return r
}

func (r *Recorder) RecordAccepted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted++
}

func (r *Recorder) RecordRejected(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejected++
	r.byCode[code]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		EncodeAccepted: r.accepted,
		EncodeRejected: r.rejected,
		EncodeTotal:    r.accepted + r.rejected,
		RejectedByCode: make(map[string]uint64, len(r.byCode)),
	}
	for k, v := range r.byCode {
		out.RejectedByCode[k] = v
	}
	if r.sessions != nil {
		out.Sessions = r.sessions()
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
