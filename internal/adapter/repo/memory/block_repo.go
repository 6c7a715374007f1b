package memory

import (
	"context"
	"sort"

	"blockgrid/internal/app/ports"
)

type BlockRepo struct {
	store *Store
}

func NewBlockRepo(store *Store) BlockRepo {
	return BlockRepo{store: store}
}

func (r BlockRepo) Upsert(ctx context.Context, block ports.BlockRecord) error {
	defer r.store.lock(ctx)()
	r.store.blocks[blockKey(block.WorldID, block.Key)] = block
	return nil
}

func (r BlockRepo) GetByKey(ctx context.Context, worldID string, key int64) (ports.BlockRecord, error) {
	defer r.store.rlock(ctx)()
	b, ok := r.store.blocks[blockKey(worldID, key)]
	if !ok {
		return ports.BlockRecord{}, ports.ErrNotFound
	}
	return b, nil
}

func (r BlockRepo) ListByWorldID(ctx context.Context, worldID string, limit int) ([]ports.BlockRecord, error) {
	defer r.store.rlock(ctx)()
	out := make([]ports.BlockRecord, 0)
	for _, b := range r.store.blocks {
		if b.WorldID == worldID {
			out = append(out, b)
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
