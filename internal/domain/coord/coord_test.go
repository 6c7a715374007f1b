package coord

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEncode_Example(t *testing.T) {
	key, err := Encode(Point{X: 3, Y: 15, Z: 97}, 2)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if key != 41698 {
		t.Fatalf("key mismatch: got=%d want=%d", key, 41698)
	}
}

func TestEncode_RejectsShiftedOverflow(t *testing.T) {
	_, err := Encode(Point{X: 3, Y: 15, Z: 99}, 2)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds, got %v", err)
	}
	var boundsErr *OutOfBoundsError
	if !errors.As(err, &boundsErr) {
		t.Fatalf("expected *OutOfBoundsError, got %T", err)
	}
	if boundsErr.Axis != "z" || boundsErr.Max != 98 {
		t.Fatalf("unexpected bounds error: %+v", boundsErr)
	}
	if got, want := err.Error(), "coordinate out of bounds for this size (max 98)"; got != want {
		t.Fatalf("message mismatch: got=%q want=%q", got, want)
	}
}

func TestEncode_SizeOneBoundaries(t *testing.T) {
	cases := []struct {
		name string
		p    Point
	}{
		{name: "negative x", p: Point{X: -1}},
		{name: "x at 10^size-1", p: Point{X: 9}},
		{name: "y at 10^size-1", p: Point{Y: 9}},
		{name: "negative z", p: Point{Z: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Encode(tc.p, 1); !errors.Is(err, ErrOutOfBounds) {
				t.Fatalf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}

	key, err := Encode(Point{X: 8, Y: 8, Z: 8}, 1)
	if err != nil {
		t.Fatalf("Encode max point error: %v", err)
	}
	if key != 999 {
		t.Fatalf("expected 999, got %d", key)
	}
}

func TestEncode_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1, MaxSize + 1} {
		if _, err := Encode(Point{}, size); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("size=%d: expected ErrInvalidSize, got %v", size, err)
		}
	}
}

func TestEncode_InjectiveForSizeOne(t *testing.T) {
	seen := make(map[Key]Point, 9*9*9)
	for x := 0; x <= 8; x++ {
		for y := 0; y <= 8; y++ {
			for z := 0; z <= 8; z++ {
				p := Point{X: x, Y: y, Z: z}
				key, err := Encode(p, 1)
				if err != nil {
					t.Fatalf("Encode(%+v) error: %v", p, err)
				}
				if prev, ok := seen[key]; ok {
					t.Fatalf("collision: %+v and %+v both encode to %d", prev, p, key)
				}
				seen[key] = p
			}
		}
	}
	if len(seen) != 729 {
		t.Fatalf("expected 729 keys, got %d", len(seen))
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	for size := MinSize; size <= MaxSize; size++ {
		max, err := MaxCoord(size)
		if err != nil {
			t.Fatalf("MaxCoord(%d) error: %v", size, err)
		}
		points := []Point{
			{X: 0, Y: 0, Z: 0},
			{X: max, Y: max, Z: max},
			{X: 0, Y: max, Z: 0},
			{X: max / 2, Y: max / 3, Z: max / 7},
		}
		for _, p := range points {
			key, err := Encode(p, size)
			if err != nil {
				t.Fatalf("size=%d Encode(%+v) error: %v", size, p, err)
			}
			got, err := Decode(key, size)
			if err != nil {
				t.Fatalf("size=%d Decode(%d) error: %v", size, key, err)
			}
			if got != p {
				t.Fatalf("size=%d round trip mismatch: got=%+v want=%+v", size, got, p)
			}
		}
	}
}

func TestDecode_LeadingZeroGroup(t *testing.T) {
	got, err := Decode(41698, 2)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if want := (Point{X: 3, Y: 15, Z: 97}); got != want {
		t.Fatalf("decode mismatch: got=%+v want=%+v", got, want)
	}
}

func TestDecode_RejectsInvalidKeys(t *testing.T) {
	cases := []struct {
		name string
		key  Key
		size int
	}{
		{name: "zero", key: 0, size: 1},
		{name: "negative", key: -111, size: 1},
		{name: "too wide", key: 1111, size: 1},
		{name: "zero x group", key: 11, size: 1},
		{name: "zero middle group", key: 10001, size: 2},
		{name: "zero last group", key: 110, size: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Decode(tc.key, tc.size); !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey, got %v", err)
			}
		})
	}
}

func TestBlockRecordJSONIsArray(t *testing.T) {
	rec := NewBlockRecord(Point{X: 3, Y: 15, Z: 97}, 5)
	b, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(b), "[3,15,97,5]"; got != want {
		t.Fatalf("json mismatch: got=%s want=%s", got, want)
	}
	if rec.Point() != (Point{X: 3, Y: 15, Z: 97}) || rec.Blockstate() != 5 {
		t.Fatalf("unexpected accessors: %+v %d", rec.Point(), rec.Blockstate())
	}
}
