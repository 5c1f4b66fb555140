package routes

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"

	"github.com/greenside/wager-services/internal/socketsvc/handlers"
	"github.com/greenside/wager-services/internal/socketsvc/ws"
)

var tokenAuth *jwtauth.JWTAuth

// SetRoutes mounts the websocket upgrade endpoint and the secured health
// check. upstream reports wager instance heartbeats for the health payload.
func SetRoutes(r *chi.Mux, s *ws.Ws, upstream func() map[string]string) {
	h := handlers.NewHandler(s, upstream)
	r.Route("/v1", func(r chi.Router) {
		// golfers connect before authenticating; identity arrives in the
		// init socket message
		r.Get("/ws", h.HandleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
		})
	})
}

func InitAuth() {
	tokenAuth = jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil)
}