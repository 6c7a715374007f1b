package ports

import (
	"context"
	"time"

	"blockgrid/internal/domain/world"
)

type WorldRepository interface {
	Create(ctx context.Context, w world.World) error
	GetByID(ctx context.Context, id string) (world.World, error)
}

type BlockRecord struct {
	WorldID    string
	Key        int64
	X          int
	Y          int
	Z          int
	Blockstate int64
	UpdatedAt  time.Time
}

type BlockRepository interface {
	Upsert(ctx context.Context, block BlockRecord) error
	GetByKey(ctx context.Context, worldID string, key int64) (BlockRecord, error)
	ListByWorldID(ctx context.Context, worldID string, limit int) ([]BlockRecord, error)
}

// TxManager runs fn in a transaction; repositories pick it up from ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
