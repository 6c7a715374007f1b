package gormrepo

import (
	"context"
	"errors"

	"blockgrid/internal/adapter/repo/gorm/model"
	"blockgrid/internal/app/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockRepo struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) BlockRepo {
	return BlockRepo{db: db}
}

func (r BlockRepo) Upsert(ctx context.Context, block ports.BlockRecord) error {
	row := model.Block{
		WorldID:    block.WorldID,
		BlockKey:   block.Key,
		X:          int32(block.X),
		Y:          int32(block.Y),
		Z:          int32(block.Z),
		Blockstate: block.Blockstate,
		UpdatedAt:  block.UpdatedAt,
	}
	return dbFromCtx(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "world_id"}, {Name: "block_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"x", "y", "z", "blockstate", "updated_at"}),
		}).
		Create(&row).Error
}

func (r BlockRepo) GetByKey(ctx context.Context, worldID string, key int64) (ports.BlockRecord, error) {
	var row model.Block
	err := dbFromCtx(ctx, r.db).
		Where(&model.Block{WorldID: worldID, BlockKey: key}).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.BlockRecord{}, ports.ErrNotFound
		}
		return ports.BlockRecord{}, err
	}
	return toRecord(row), nil
}

func (r BlockRepo) ListByWorldID(ctx context.Context, worldID string, limit int) ([]ports.BlockRecord, error) {
	rows := []model.Block{}
	query := dbFromCtx(ctx, r.db).
		Where(&model.Block{WorldID: worldID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "block_key"}}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]ports.BlockRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, toRecord(row))
	}
	return out, nil
}

func toRecord(row model.Block) ports.BlockRecord {
	return ports.BlockRecord{
		WorldID:    row.WorldID,
		Key:        row.BlockKey,
		X:          int(row.X),
		Y:          int(row.Y),
		Z:          int(row.Z),
		Blockstate: row.Blockstate,
		UpdatedAt:  row.UpdatedAt,
	}
}
