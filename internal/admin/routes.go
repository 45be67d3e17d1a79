package admin

import (
	"github.com/gorilla/mux"
	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1/admin").Subrouter()
	api.Use(authMiddleware.Authenticate)

	api.HandleFunc("/dashboard", handler.Dashboard).Methods("GET")
}
