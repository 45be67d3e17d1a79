package insights

import (
	"github.com/gorilla/mux"
	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/ai").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/analyze-profile", handler.AnalyzeProfile).Methods("POST")
	api.HandleFunc("/analyze-image", handler.AnalyzeImage).Methods("POST")
}
