package gormrepo

import (
	"context"
	"errors"
	"strings"

	"blockgrid/internal/adapter/repo/gorm/model"
	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/world"

	"gorm.io/gorm"
)

type WorldRepo struct {
	db *gorm.DB
}

func NewWorldRepo(db *gorm.DB) WorldRepo {
	return WorldRepo{db: db}
}

func (r WorldRepo) Create(ctx context.Context, w world.World) error {
	row := model.World{
		ID:        w.ID,
		Name:      w.Name,
		Size:      int32(w.Size),
		CreatedAt: w.CreatedAt,
	}
	if err := dbFromCtx(ctx, r.db).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ports.ErrConflict
		}
		return err
	}
	return nil
}

func (r WorldRepo) GetByID(ctx context.Context, id string) (world.World, error) {
	var row model.World
	err := dbFromCtx(ctx, r.db).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return world.World{}, ports.ErrNotFound
		}
		return world.World{}, err
	}
	return world.World{
		ID:        row.ID,
		Name:      row.Name,
		Size:      int(row.Size),
		CreatedAt: row.CreatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
