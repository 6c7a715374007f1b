package memory

import (
	"context"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/world"
)

type WorldRepo struct {
	store *Store
}

func NewWorldRepo(store *Store) WorldRepo {
	return WorldRepo{store: store}
}

func (r WorldRepo) Create(ctx context.Context, w world.World) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.worlds[w.ID]; ok {
		return ports.ErrConflict
	}
	r.store.worlds[w.ID] = w
	return nil
}

func (r WorldRepo) GetByID(ctx context.Context, id string) (world.World, error) {
	if err := ctx.Err(); err != nil {
		return world.World{}, err
	}
	defer r.store.rlock(ctx)()
	w, ok := r.store.worlds[id]
	if !ok {
		return world.World{}, ports.ErrNotFound
	}
	return w, nil
}
