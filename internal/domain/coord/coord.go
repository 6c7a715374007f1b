package coord

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MinSize and MaxSize bound the digit width per axis. Three axes of MaxSize
// digits must fit in an int64 key.
const (
	MinSize = 1
	MaxSize = 6
)

var (
	ErrInvalidSize = errors.New("invalid coordinate size")
	ErrOutOfBounds = errors.New("coordinate out of bounds for this size")
	ErrInvalidKey  = errors.New("invalid encoded key")
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Key is the packed form of a Point for a given size.
type Key int64

type OutOfBoundsError struct {
	Axis  string
	Value int
	Max   int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s (max %d)", ErrOutOfBounds.Error(), e.Max)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}

// MaxCoord returns the largest raw coordinate that can be encoded with size
// digits per axis. Encoding shifts every axis by one so that an all-zero
// group never appears in a key, which leaves 10^size-2 as the top value
// rather than 10^size-1.
func MaxCoord(size int) (int, error) {
	if size < MinSize || size > MaxSize {
		return 0, ErrInvalidSize
	}
	return pow10(size) - 2, nil
}

func Encode(p Point, size int) (Key, error) {
	max, err := MaxCoord(size)
	if err != nil {
		return 0, err
	}
	for _, axis := range []struct {
		name string
		v    int
	}{{"x", p.X}, {"y", p.Y}, {"z", p.Z}} {
		if axis.v < 0 || axis.v > max {
			return 0, &OutOfBoundsError{Axis: axis.name, Value: axis.v, Max: max}
		}
	}

	var b strings.Builder
	b.Grow(3 * size)
	for _, v := range []int{p.X, p.Y, p.Z} {
		b.WriteString(padLeft(strconv.Itoa(v+1), size))
	}
	n, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse key: %w", err)
	}
	return Key(n), nil
}

// Decode reverses Encode for the same size.
func Decode(k Key, size int) (Point, error) {
	if size < MinSize || size > MaxSize {
		return Point{}, ErrInvalidSize
	}
	if k <= 0 {
		return Point{}, ErrInvalidKey
	}
	digits := strconv.FormatInt(int64(k), 10)
	if len(digits) > 3*size {
		return Point{}, ErrInvalidKey
	}
	digits = padLeft(digits, 3*size)

	var axes [3]int
	for i := range axes {
		group, err := strconv.Atoi(digits[i*size : (i+1)*size])
		if err != nil {
			return Point{}, ErrInvalidKey
		}
		if group == 0 {
			return Point{}, ErrInvalidKey
		}
		axes[i] = group - 1
	}
	return Point{X: axes[0], Y: axes[1], Z: axes[2]}, nil
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func pow10(n int) int {
	out := 1
	for i := 0; i < n; i++ {
		out *= 10
	}
	return out
}
