package http

import (
	"errors"
	"fmt"

	"word-impostor-be/internal/service/dto"
	"word-impostor-be/internal/service/game"
	"word-impostor-be/internal/state"

	"github.com/kataras/iris/v12"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// writeError maps the service error classes onto plain-text HTTP failures.
// Clients key off the status: 403 means "you were removed", 404 means "the
// room is gone", both clear the local session.
func writeError(ctx iris.Context, err error) {
	switch {
	case errors.Is(err, game.ErrValidation):
		ctx.StatusCode(iris.StatusBadRequest)
	case errors.Is(err, game.ErrForbidden):
		ctx.StatusCode(iris.StatusForbidden)
	case errors.Is(err, game.ErrNotFound):
		ctx.StatusCode(iris.StatusNotFound)
	default:
		zap.L().Error("room request failed", zap.Error(err))
		ctx.StatusCode(iris.StatusInternalServerError)
		ctx.WriteString("internal error")
		return
	}

	ctx.WriteString(err.Error())
}

func CreateRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req dto.CreateRoomRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.WriteString("invalid request body")
			return
		}

		resp, err := appState.RoomSvc.CreateRoom(ctx.Request().Context(), req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.StatusCode(iris.StatusCreated)
		ctx.JSON(resp)
	}
}

func GetRoom(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().Get("code")
		playerID := ctx.URLParam("playerId")

		view, err := appState.RoomSvc.GetRoomView(ctx.Request().Context(), code, playerID)
		if err != nil {
			writeError(ctx, err)
			return
		}

		ctx.JSON(view)
	}
}

func RoomAction(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().Get("code")

		var req dto.RoomActionRequest

		if err := ctx.ReadJSON(&req); err != nil {
			ctx.StatusCode(iris.StatusBadRequest)
			ctx.WriteString("invalid request body")
			return
		}

		view, err := appState.RoomSvc.HandleAction(ctx.Request().Context(), code, req)
		if err != nil {
			writeError(ctx, err)
			return
		}

		// Leave has no view to return; the requester is gone.
		if view == nil {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}

		ctx.JSON(view)
	}
}

// RoomQR renders a QR code pointing at the join page of the room, so the
// host can hold up a phone instead of spelling the code out.
func RoomQR(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		code := ctx.Params().Get("code")

		view, err := appState.RoomSvc.GetRoomView(ctx.Request().Context(), code, ctx.URLParam("playerId"))
		if err != nil {
			writeError(ctx, err)
			return
		}

		size := ctx.URLParamIntDefault("size", 256)
		if size < 64 || size > 1024 {
			size = 256
		}

		joinURL := fmt.Sprintf("%s/?room=%s", appState.Cfg.PublicURL, view.Code)

		png, err := qrcode.Encode(joinURL, qrcode.Medium, size)
		if err != nil {
			zap.L().Error("failed to encode QR code", zap.Error(err))
			ctx.StatusCode(iris.StatusInternalServerError)
			ctx.WriteString("internal error")
			return
		}

		ctx.ContentType("image/png")
		ctx.Write(png)
	}
}

func Healthz(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		if err := appState.RoomSvc.Ping(ctx.Request().Context()); err != nil {
			zap.L().Error("store ping failed", zap.Error(err))
			ctx.StatusCode(iris.StatusServiceUnavailable)
			ctx.WriteString("store unavailable")
			return
		}

		ctx.WriteString("ok")
	}
}
