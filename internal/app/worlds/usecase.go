package worlds

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/world"

	"github.com/google/uuid"
)

var ErrInvalidRequest = errors.New("invalid world request")

type UseCase struct {
	Repo  ports.WorldRepository
	NewID func() string
	Now   func() time.Time
}

func (u UseCase) Create(ctx context.Context, req CreateRequest) (world.World, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return world.World{}, ErrInvalidRequest
	}
	if err := world.ValidateSize(req.Size); err != nil {
		return world.World{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	w := world.World{
		ID:        u.newID(),
		Name:      name,
		Size:      req.Size,
		CreatedAt: u.now().UTC(),
	}
	if err := u.Repo.Create(ctx, w); err != nil {
		return world.World{}, err
	}
	return w, nil
}

func (u UseCase) Get(ctx context.Context, id string) (world.World, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return world.World{}, ErrInvalidRequest
	}
	return u.Repo.GetByID(ctx, id)
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
