package blockkey

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/coord"
)

const DefaultLookupTimeout = 2 * time.Second

var (
	ErrBlockstateNotNumeric = errors.New("blockstate must be numeric")
	ErrWorldNotFound        = errors.New("world reference not found")
)

// Error codes reported to clients and recorded in metrics.
const (
	CodeBlockstateNotNumeric = "blockstate_not_numeric"
	CodeWorldNotFound        = "world_not_found"
	CodeOutOfBounds          = "coordinate_out_of_bounds"
	CodeInvalidKey           = "invalid_key"
	CodeInternal             = "internal_error"
)

type UseCase struct {
	Worlds        ports.WorldRepository
	Metrics       ports.EncodeMetrics
	LookupTimeout time.Duration
}

// Execute validates blockstate, resolves the world size and encodes the
// coordinate, in that order. Every failure is terminal for the request.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	resp, err := u.execute(ctx, req)
	u.record(err)
	return resp, err
}

func (u UseCase) execute(ctx context.Context, req Request) (Response, error) {
	blockstate, err := parseBlockstate(req.Blockstate)
	if err != nil {
		return Response{}, err
	}
	size, err := u.resolveSize(ctx, req.WorldID)
	if err != nil {
		return Response{}, err
	}
	p := coord.Point{X: req.X, Y: req.Y, Z: req.Z}
	key, err := coord.Encode(p, size)
	if err != nil {
		return Response{}, err
	}
	return Response{L: int64(key), BlockData: coord.NewBlockRecord(p, blockstate)}, nil
}

func (u UseCase) Decode(ctx context.Context, req DecodeRequest) (DecodeResponse, error) {
	size, err := u.resolveSize(ctx, req.WorldID)
	if err != nil {
		return DecodeResponse{}, err
	}
	p, err := coord.Decode(coord.Key(req.L), size)
	if err != nil {
		return DecodeResponse{}, err
	}
	return DecodeResponse{L: req.L, X: p.X, Y: p.Y, Z: p.Z}, nil
}

// resolveSize treats a missing world, an empty reference and an expired
// lookup alike. Other repository failures are passed through.
func (u UseCase) resolveSize(ctx context.Context, worldID string) (int, error) {
	worldID = strings.TrimSpace(worldID)
	if worldID == "" || u.Worlds == nil {
		return 0, ErrWorldNotFound
	}
	timeout := u.LookupTimeout
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	w, err := u.Worlds.GetByID(lookupCtx, worldID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) || errors.Is(err, context.DeadlineExceeded) {
			return 0, ErrWorldNotFound
		}
		return 0, err
	}
	return w.Size, nil
}

func parseBlockstate(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, ErrBlockstateNotNumeric
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, ErrBlockstateNotNumeric
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, ErrBlockstateNotNumeric
	}
	out, ok := IntegralNumber(n)
	if !ok {
		return 0, ErrBlockstateNotNumeric
	}
	return out, nil
}

// IntegralNumber accepts any JSON spelling of an integer that fits int64,
// including 5.0 and 1e3.
func IntegralNumber(n json.Number) (int64, bool) {
	if out, err := n.Int64(); err == nil {
		return out, true
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || math.Trunc(f) != f {
		return 0, false
	}
	if f < -(1<<63) || f >= 1<<63 {
		return 0, false
	}
	return int64(f), true
}

func (u UseCase) record(err error) {
	if u.Metrics == nil {
		return
	}
	if err == nil {
		u.Metrics.RecordAccepted()
		return
	}
	u.Metrics.RecordRejected(ErrorCode(err))
}

func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrBlockstateNotNumeric):
		return CodeBlockstateNotNumeric
	case errors.Is(err, ErrWorldNotFound):
		return CodeWorldNotFound
	case errors.Is(err, coord.ErrOutOfBounds):
		return CodeOutOfBounds
	case errors.Is(err, coord.ErrInvalidKey):
		return CodeInvalidKey
	default:
		return CodeInternal
	}
}
