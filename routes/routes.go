package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/marchalgreen/rundeklar/handlers"
	"github.com/marchalgreen/rundeklar/middleware"
)

// SetupRoutes mounts the full API. Reads and the websocket feed are
// public so hall screens can follow along; anything that mutates the
// board requires the board token.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	checkInHandler *handlers.CheckInHandler,
	boardHandler *handlers.BoardHandler,
	resultHandler *handlers.ResultHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Post("/auth/login", authHandler.Login)
	router.Get("/ws/sessions/{sessionID}", webSocketHandler.ServeWs)

	// public read surface
	router.Get("/players", playerHandler.List)
	router.Get("/players/{playerID}", playerHandler.GetByID)
	router.Get("/session", sessionHandler.Active)
	router.Get("/checkins", checkInHandler.List)
	router.Get("/board", boardHandler.View)
	router.Get("/sessions/{sessionID}/results", resultHandler.ListBySession)

	// everything below changes the night's state
	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))
		r.Use(middleware.Authorize("board"))

		r.Post("/session", sessionHandler.Start)
		r.Post("/session/end", sessionHandler.End)
		r.Put("/session/round/{round}", sessionHandler.SelectRound)

		r.Post("/checkins", checkInHandler.Create)
		r.Delete("/checkins/{playerID}", checkInHandler.Delete)

		r.Post("/board/move", boardHandler.Move)
		r.Post("/board/arrange", boardHandler.AutoArrange)
		r.Post("/board/reset", boardHandler.ResetRound)
		r.Post("/board/courts/{courtNumber}/lock", boardHandler.ToggleLock)
		r.Put("/board/courts/{courtNumber}/capacity", boardHandler.SetCapacity)
		r.Post("/board/players/{playerID}/activate", boardHandler.ActivatePlayer)
		r.Post("/board/players/{playerID}/available", boardHandler.MarkAvailable)

		r.Post("/results", resultHandler.Create)
	})
}
