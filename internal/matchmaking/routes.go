package matchmaking

import (
	"github.com/gorilla/mux"
	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/matches").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/generate", handler.Generate).Methods("POST")
	api.HandleFunc("/recommendations", handler.GetRecommendations).Methods("GET")
}
