package blocks

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"testing"
	"time"

	"blockgrid/internal/app/ports"
	"blockgrid/internal/domain/coord"
)

func TestUseCase_PlaceInsertsThenReplaces(t *testing.T) {
	repo := newBlockRepoStub()
	tx := &txStub{}
	now := time.Date(2026, 4, 2, 8, 0, 0, 0, time.UTC)
	uc := UseCase{TxManager: tx, Blocks: repo, Now: func() time.Time { return now }}

	req := PlaceRequest{WorldID: "w1", L: 41698, BlockData: coord.BlockRecord{3, 15, 97, 5}}
	resp, err := uc.Place(context.Background(), req)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if resp.Replaced {
		t.Fatalf("expected first place to insert")
	}
	if tx.calls != 1 {
		t.Fatalf("expected place to run in a transaction, calls=%d", tx.calls)
	}
	stored := repo.rows[rowKey("w1", 41698)]
	if stored.X != 3 || stored.Y != 15 || stored.Z != 97 || stored.Blockstate != 5 || !stored.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected stored row: %+v", stored)
	}

	req.BlockData = coord.BlockRecord{3, 15, 97, 9}
	resp, err = uc.Place(context.Background(), req)
	if err != nil {
		t.Fatalf("second Place error: %v", err)
	}
	if !resp.Replaced {
		t.Fatalf("expected second place to replace")
	}
	if got := repo.rows[rowKey("w1", 41698)].Blockstate; got != 9 {
		t.Fatalf("expected blockstate 9 after replace, got %d", got)
	}
}

func TestUseCase_PlaceRejectsInvalidRequest(t *testing.T) {
	uc := UseCase{Blocks: newBlockRepoStub()}
	if _, err := uc.Place(context.Background(), PlaceRequest{L: 111}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for missing world, got %v", err)
	}
	if _, err := uc.Place(context.Background(), PlaceRequest{WorldID: "w1"}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest for zero key, got %v", err)
	}
}

func TestUseCase_PlacePropagatesLookupFailure(t *testing.T) {
	wantErr := errors.New("db down")
	repo := newBlockRepoStub()
	repo.getErr = wantErr
	uc := UseCase{Blocks: repo}
	if _, err := uc.Place(context.Background(), PlaceRequest{WorldID: "w1", L: 111}); !errors.Is(err, wantErr) {
		t.Fatalf("expected %v, got %v", wantErr, err)
	}
	if len(repo.rows) != 0 {
		t.Fatalf("expected no write after failed lookup")
	}
}

func TestUseCase_GetAndList(t *testing.T) {
	repo := newBlockRepoStub()
	uc := UseCase{Blocks: repo}
	for _, b := range []PlaceRequest{
		{WorldID: "w1", L: 222, BlockData: coord.BlockRecord{1, 1, 1, 1}},
		{WorldID: "w1", L: 111, BlockData: coord.BlockRecord{0, 0, 0, 2}},
		{WorldID: "w2", L: 111, BlockData: coord.BlockRecord{0, 0, 0, 3}},
	} {
		if _, err := uc.Place(context.Background(), b); err != nil {
			t.Fatalf("Place error: %v", err)
		}
	}

	got, err := uc.Get(context.Background(), GetRequest{WorldID: "w2", L: 111})
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.BlockData != (coord.BlockRecord{0, 0, 0, 3}) {
		t.Fatalf("unexpected block: %+v", got)
	}
	if _, err := uc.Get(context.Background(), GetRequest{WorldID: "w2", L: 999}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	list, err := uc.List(context.Background(), ListRequest{WorldID: "w1"})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(list.Blocks) != 2 || list.Blocks[0].L != 111 || list.Blocks[1].L != 222 {
		t.Fatalf("unexpected list: %+v", list.Blocks)
	}
	if repo.lastLimit != DefaultListLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultListLimit, repo.lastLimit)
	}

	empty, err := uc.List(context.Background(), ListRequest{WorldID: "w3", Limit: 5000})
	if err != nil {
		t.Fatalf("List empty error: %v", err)
	}
	if len(empty.Blocks) != 0 {
		t.Fatalf("expected no blocks, got %+v", empty.Blocks)
	}
	if repo.lastLimit != MaxListLimit {
		t.Fatalf("expected capped limit %d, got %d", MaxListLimit, repo.lastLimit)
	}
}

type blockRepoStub struct {
	rows      map[string]ports.BlockRecord
	getErr    error
	lastLimit int
}

func newBlockRepoStub() *blockRepoStub {
	return &blockRepoStub{rows: map[string]ports.BlockRecord{}}
}

func rowKey(worldID string, key int64) string {
	return worldID + "::" + strconv.FormatInt(key, 10)
}

func (r *blockRepoStub) Upsert(_ context.Context, block ports.BlockRecord) error {
	r.rows[rowKey(block.WorldID, block.Key)] = block
	return nil
}

func (r *blockRepoStub) GetByKey(_ context.Context, worldID string, key int64) (ports.BlockRecord, error) {
	if r.getErr != nil {
		return ports.BlockRecord{}, r.getErr
	}
	row, ok := r.rows[rowKey(worldID, key)]
	if !ok {
		return ports.BlockRecord{}, ports.ErrNotFound
	}
	return row, nil
}

func (r *blockRepoStub) ListByWorldID(_ context.Context, worldID string, limit int) ([]ports.BlockRecord, error) {
	r.lastLimit = limit
	out := []ports.BlockRecord{}
	for _, row := range r.rows {
		if row.WorldID == worldID {
			out = append(out, row)
		}
	}
	if len(out) == 0 {
		return nil, ports.ErrNotFound
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

type txStub struct {
	calls int
}

func (t *txStub) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var _ ports.BlockRepository = (*blockRepoStub)(nil)
var _ ports.TxManager = (*txStub)(nil)
