package blocks

import (
	"time"

	"blockgrid/internal/domain/coord"
)

type PlaceRequest struct {
	WorldID   string
	L         int64
	BlockData coord.BlockRecord
}

type PlaceResponse struct {
	L         int64             `json:"l"`
	BlockData coord.BlockRecord `json:"blockdata"`
	Replaced  bool              `json:"replaced"`
}

type GetRequest struct {
	WorldID string
	L       int64
}

type ListRequest struct {
	WorldID string
	Limit   int
}

type BlockView struct {
	L         int64             `json:"l"`
	BlockData coord.BlockRecord `json:"blockdata"`
	UpdatedAt time.Time         `json:"updated_at"`
}

type ListResponse struct {
	WorldID string      `json:"world_id"`
	Blocks  []BlockView `json:"blocks"`
}
