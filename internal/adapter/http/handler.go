package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"blockgrid/internal/app/blockkey"
	"blockgrid/internal/app/blocks"
	"blockgrid/internal/app/ports"
	"blockgrid/internal/app/session"
	"blockgrid/internal/app/worlds"
	"blockgrid/internal/domain/coord"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route"
)

type Handler struct {
	WorldsUC  worlds.UseCase
	EncoderUC blockkey.UseCase
	BlocksUC  blocks.UseCase
	Sessions  *session.Registry
	KPI       kpiSnapshotProvider
	Logger    *log.Logger
}

func (h Handler) RegisterRoutes(r *route.Engine) {
	r.Use(corsMiddleware())
	r.OPTIONS("/*path", func(context.Context, *app.RequestContext) {})

	api := r.Group("/api")
	api.POST("/worlds", h.createWorld)
	api.GET("/worlds/:id", h.getWorld)
	api.GET("/worlds/:id/blocks", h.listBlocks)
	api.GET("/worlds/:id/blocks/:l", h.getBlock)
	api.GET("/worlds/:id/keys/:l", h.decodeKey)

	api.POST("/blocks/encode", h.blockKeyMiddleware(), h.encodedBlock)
	api.POST("/blocks", h.blockKeyMiddleware(), h.placeBlock)

	api.POST("/sessions", h.openSession)
	api.GET("/sessions/:id/tick", h.sessionTick)
	api.POST("/sessions/:id/pause", h.pauseSession)
	api.POST("/sessions/:id/resume", h.resumeSession)
	api.DELETE("/sessions/:id", h.closeSession)

	r.GET("/ops/kpi", h.kpi)
	r.GET("/healthz", h.healthz)
}

func (h Handler) createWorld(c context.Context, ctx *app.RequestContext) {
	var body worlds.CreateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	w, err := h.WorldsUC.Create(c, body)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, w)
}

func (h Handler) getWorld(c context.Context, ctx *app.RequestContext) {
	w, err := h.WorldsUC.Get(c, ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, w)
}

func (h Handler) encodedBlock(_ context.Context, ctx *app.RequestContext) {
	l, data, _, ok := encodedFromContext(ctx)
	if !ok {
		h.writeError(ctx, errMissingEncodedBlock)
		return
	}
	ctx.JSON(consts.StatusOK, blockkey.Response{L: l, BlockData: data})
}

func (h Handler) placeBlock(c context.Context, ctx *app.RequestContext) {
	l, data, worldID, ok := encodedFromContext(ctx)
	if !ok {
		h.writeError(ctx, errMissingEncodedBlock)
		return
	}
	resp, err := h.BlocksUC.Place(c, blocks.PlaceRequest{WorldID: worldID, L: l, BlockData: data})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	status := consts.StatusCreated
	if resp.Replaced {
		status = consts.StatusOK
	}
	ctx.JSON(status, resp)
}

func (h Handler) getBlock(c context.Context, ctx *app.RequestContext) {
	l, err := parseKeyParam(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	resp, err := h.BlocksUC.Get(c, blocks.GetRequest{WorldID: ctx.Param("id"), L: l})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listBlocks(c context.Context, ctx *app.RequestContext) {
	limit := 0
	if raw := strings.TrimSpace(ctx.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.writeError(ctx, fmt.Errorf("%w: limit must be an integer", blocks.ErrInvalidRequest))
			return
		}
		limit = n
	}
	resp, err := h.BlocksUC.List(c, blocks.ListRequest{WorldID: ctx.Param("id"), Limit: limit})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) decodeKey(c context.Context, ctx *app.RequestContext) {
	l, err := parseKeyParam(ctx)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	resp, err := h.EncoderUC.Decode(c, blockkey.DecodeRequest{WorldID: ctx.Param("id"), L: l})
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) openSession(c context.Context, ctx *app.RequestContext) {
	var body session.OpenRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	s, err := h.Sessions.Open(c, body)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	view, err := h.Sessions.Tick(s.ID)
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, view)
}

func (h Handler) sessionTick(_ context.Context, ctx *app.RequestContext) {
	h.writeTickView(ctx, h.Sessions.Tick)
}

func (h Handler) pauseSession(_ context.Context, ctx *app.RequestContext) {
	h.writeTickView(ctx, h.Sessions.Pause)
}

func (h Handler) resumeSession(_ context.Context, ctx *app.RequestContext) {
	h.writeTickView(ctx, h.Sessions.Resume)
}

func (h Handler) closeSession(_ context.Context, ctx *app.RequestContext) {
	if _, err := h.Sessions.Close(ctx.Param("id")); err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.Status(consts.StatusNoContent)
}

func (h Handler) writeTickView(ctx *app.RequestContext, fn func(id string) (session.TickView, error)) {
	view, err := fn(ctx.Param("id"))
	if err != nil {
		h.writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, view)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func (h Handler) healthz(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func parseKeyParam(ctx *app.RequestContext) (int64, error) {
	l, err := strconv.ParseInt(strings.TrimSpace(ctx.Param("l")), 10, 64)
	if err != nil {
		return 0, coord.ErrInvalidKey
	}
	return l, nil
}

var (
	errInvalidJSON         = errors.New("invalid json")
	errMissingEncodedBlock = errors.New("encoded block missing from request context")
)

func (h Handler) writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, errInvalidJSON):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", err.Error())
	case errors.Is(err, errInvalidBody):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, blockkey.ErrBlockstateNotNumeric):
		writeErrorBody(ctx, consts.StatusBadRequest, blockkey.CodeBlockstateNotNumeric, err.Error())
	case errors.Is(err, coord.ErrOutOfBounds):
		writeErrorBody(ctx, consts.StatusBadRequest, blockkey.CodeOutOfBounds, err.Error())
	case errors.Is(err, coord.ErrInvalidKey):
		writeErrorBody(ctx, consts.StatusBadRequest, blockkey.CodeInvalidKey, err.Error())
	case errors.Is(err, blockkey.ErrWorldNotFound), errors.Is(err, session.ErrWorldNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, blockkey.CodeWorldNotFound, err.Error())
	case errors.Is(err, worlds.ErrInvalidRequest),
		errors.Is(err, blocks.ErrInvalidRequest),
		errors.Is(err, session.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, session.ErrSessionNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "session_not_found", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		if h.Logger != nil {
			h.Logger.Printf("%s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		writeErrorBody(ctx, consts.StatusInternalServerError, blockkey.CodeInternal, "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": message,
		"code":  code,
	})
}
