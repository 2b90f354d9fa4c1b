package http

import (
	"fmt"

	"word-impostor-be/internal/state"

	"github.com/kataras/iris/v12"
)

// NewApp wires the HTTP surface. Split from RunServer so tests can drive
// the application through the iris test host.
func NewApp(appState *state.AppState) *iris.Application {
	app := iris.Default()

	app.Get("/healthz", Healthz(appState))

	app.Post("/rooms", CreateRoom(appState))
	app.Get("/rooms/{code}", GetRoom(appState))
	app.Post("/rooms/{code}", RoomAction(appState))
	app.Get("/rooms/{code}/qr", RoomQR(appState))

	return app
}

func RunServer(appState *state.AppState) {
	app := NewApp(appState)

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.Host,
		appState.Cfg.Port,
	)

	app.Listen(addr)
}
