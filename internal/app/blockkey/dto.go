package blockkey

import (
	"encoding/json"

	"blockgrid/internal/domain/coord"
)

// Request carries blockstate undecoded so a string or missing value can be
// told apart from a number.
type Request struct {
	WorldID    string
	X          int
	Y          int
	Z          int
	Blockstate json.RawMessage
}

type Response struct {
	L         int64             `json:"l"`
	BlockData coord.BlockRecord `json:"blockdata"`
}

type DecodeRequest struct {
	WorldID string
	L       int64
}

type DecodeResponse struct {
	L int64 `json:"l"`
	X int   `json:"x"`
	Y int   `json:"y"`
	Z int   `json:"z"`
}
