package routes

import (
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"

	"github.com/greenside/wager-services/internal/statsvc/handlers"
	"github.com/greenside/wager-services/internal/statsvc/store"
)

var tokenAuth *jwtauth.JWTAuth

func SetRoutes(r *chi.Mux, resultStore *store.ResultStore) {
	h := handlers.NewHandler(resultStore)
	r.Route("/v1", func(r chi.Router) {
		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Get("/health", h.HealthHandler)
			r.Get("/players/{userID}/stats", h.GetPlayerStatsHandler)
		})
	})
}

func InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)
}
