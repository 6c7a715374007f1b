package blocks

import (
	"context"
	"errors"
	"strings"
	"time"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/coord"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)

var ErrInvalidRequest = errors.New("invalid block request")

type UseCase struct {
	TxManager ports.TxManager
	Blocks    ports.BlockRepository
	Now       func() time.Time
}

// Place stores an already encoded block. L and BlockData come from the
// encoder and are trusted to agree with each other.
func (u UseCase) Place(ctx context.Context, req PlaceRequest) (PlaceResponse, error) {
	worldID := strings.TrimSpace(req.WorldID)
	if worldID == "" || req.L <= 0 {
		return PlaceResponse{}, ErrInvalidRequest
	}
	p := req.BlockData.Point()
	record := ports.BlockRecord{
		WorldID:    worldID,
		Key:        req.L,
		X:          p.X,
		Y:          p.Y,
		Z:          p.Z,
		Blockstate: req.BlockData.Blockstate(),
		UpdatedAt:  u.now().UTC(),
	}

	replaced := false
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		_, err := u.Blocks.GetByKey(txCtx, worldID, req.L)
		switch {
		case err == nil:
			replaced = true
		case errors.Is(err, ports.ErrNotFound):
		default:
			return err
		}
		return u.Blocks.Upsert(txCtx, record)
	})
	if err != nil {
		return PlaceResponse{}, err
	}
	return PlaceResponse{L: req.L, BlockData: req.BlockData, Replaced: replaced}, nil
}

func (u UseCase) Get(ctx context.Context, req GetRequest) (BlockView, error) {
	worldID := strings.TrimSpace(req.WorldID)
	if worldID == "" || req.L <= 0 {
		return BlockView{}, ErrInvalidRequest
	}
	rec, err := u.Blocks.GetByKey(ctx, worldID, req.L)
	if err != nil {
		return BlockView{}, err
	}
	return toView(rec), nil
}

func (u UseCase) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	worldID := strings.TrimSpace(req.WorldID)
	if worldID == "" {
		return ListResponse{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	records, err := u.Blocks.ListByWorldID(ctx, worldID, limit)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return ListResponse{}, err
	}
	out := ListResponse{WorldID: worldID, Blocks: make([]BlockView, 0, len(records))}
	for _, rec := range records {
		out.Blocks = append(out.Blocks, toView(rec))
	}
	return out, nil
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}

func toView(rec ports.BlockRecord) BlockView {
	return BlockView{
		L:         rec.Key,
		BlockData: coord.NewBlockRecord(coord.Point{X: rec.X, Y: rec.Y, Z: rec.Z}, rec.Blockstate),
		UpdatedAt: rec.UpdatedAt,
	}
}
