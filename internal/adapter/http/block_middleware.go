package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"blockgrid/internal/app/blockkey"
	"blockgrid/internal/domain/coord"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Keys under which the encoder middleware leaves its result for the next
// handler.
const (
	ctxKeyL         = "l"
	ctxKeyBlockData = "blockdata"
	ctxKeyWorldID   = "worlddata"
)

const blockBodySchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["x", "y", "z"],
  "properties": {
    "x": {"type": "integer"},
    "y": {"type": "integer"},
    "z": {"type": "integer"},
    "worlddata": {"type": "string"}
  }
}`

var blockSchema = jsonschema.MustCompileString("blockgrid://schemas/block-body.json", blockBodySchema)

var errInvalidBody = errors.New("invalid request body")

type blockBody struct {
	X          int
	Y          int
	Z          int
	WorldData  string
	Blockstate json.RawMessage
}

// rawBlockBody keeps the axes as numbers so 3.0 and 3e0 decode the same way
// the schema judges them.
type rawBlockBody struct {
	X          json.Number     `json:"x"`
	Y          json.Number     `json:"y"`
	Z          json.Number     `json:"z"`
	WorldData  string          `json:"worlddata"`
	Blockstate json.RawMessage `json:"blockstate"`
}

// blockKeyMiddleware encodes {x, y, z, worlddata, blockstate} into l and
// blockdata. Blockstate type is left to the encoder so that its rejection
// carries the dedicated error code.
func (h Handler) blockKeyMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		body, err := decodeBlockBody(ctx.Request.Body())
		if err != nil {
			h.writeError(ctx, err)
			ctx.Abort()
			return
		}
		resp, err := h.EncoderUC.Execute(c, blockkey.Request{
			WorldID:    body.WorldData,
			X:          body.X,
			Y:          body.Y,
			Z:          body.Z,
			Blockstate: body.Blockstate,
		})
		if err != nil {
			h.writeError(ctx, err)
			ctx.Abort()
			return
		}
		ctx.Set(ctxKeyL, resp.L)
		ctx.Set(ctxKeyBlockData, resp.BlockData)
		ctx.Set(ctxKeyWorldID, strings.TrimSpace(body.WorldData))
		ctx.Next(c)
	}
}

func decodeBlockBody(raw []byte) (blockBody, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return blockBody{}, errInvalidJSON
	}
	docDec := json.NewDecoder(bytes.NewReader(raw))
	docDec.UseNumber()
	var doc any
	if err := docDec.Decode(&doc); err != nil {
		return blockBody{}, errInvalidJSON
	}
	if _, err := docDec.Token(); err != io.EOF {
		return blockBody{}, errInvalidJSON
	}
	if err := blockSchema.Validate(doc); err != nil {
		return blockBody{}, fmt.Errorf("%w: %s", errInvalidBody, schemaViolation(err))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var in rawBlockBody
	if err := dec.Decode(&in); err != nil {
		return blockBody{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	body := blockBody{WorldData: in.WorldData, Blockstate: in.Blockstate}
	axes := []struct {
		name string
		n    json.Number
		dst  *int
	}{
		{"x", in.X, &body.X},
		{"y", in.Y, &body.Y},
		{"z", in.Z, &body.Z},
	}
	for _, a := range axes {
		v, ok := blockkey.IntegralNumber(a.n)
		if !ok {
			return blockBody{}, fmt.Errorf("%w: %s: expected integer", errInvalidBody, a.name)
		}
		*a.dst = int(v)
	}
	return body, nil
}

// schemaViolation reports the first leaf cause, which names the offending
// field rather than the whole document.
func schemaViolation(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return loc + ": " + ve.Message
}

func encodedFromContext(ctx *app.RequestContext) (int64, coord.BlockRecord, string, bool) {
	rawL, ok := ctx.Get(ctxKeyL)
	if !ok {
		return 0, coord.BlockRecord{}, "", false
	}
	l, ok := rawL.(int64)
	if !ok {
		return 0, coord.BlockRecord{}, "", false
	}
	rawData, ok := ctx.Get(ctxKeyBlockData)
	if !ok {
		return 0, coord.BlockRecord{}, "", false
	}
	data, ok := rawData.(coord.BlockRecord)
	if !ok {
		return 0, coord.BlockRecord{}, "", false
	}
	worldID := ctx.GetString(ctxKeyWorldID)
	return l, data, worldID, true
}
