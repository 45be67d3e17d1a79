package users

import (
	"github.com/gorilla/mux"
	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/profile").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("", handler.GetProfile).Methods("GET")
	api.HandleFunc("", handler.UpdateProfile).Methods("PUT")
}
