package world

import (
	"time"

	"blockgrid/internal/domain/coord"
)

// World is the record the encoder resolves a digit width from.
type World struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

func ValidateSize(size int) error {
	if size < coord.MinSize || size > coord.MaxSize {
		return coord.ErrInvalidSize
	}
	return nil
}

// MaxCoord is the largest raw coordinate this world accepts on any axis.
func (w World) MaxCoord() (int, error) {
	return coord.MaxCoord(w.Size)
}
