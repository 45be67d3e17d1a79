package admin

import (
	"log"
	"net/http"

	"github.com/sparkmatch/sparkmatch-backend/internal/auth"
	"github.com/sparkmatch/sparkmatch-backend/internal/common/utils"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Dashboard returns aggregate activity stats
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserIDFromContext(r.Context()); !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	stats, err := h.store.DashboardStats(r.Context())
	if err != nil {
		log.Printf("error fetching dashboard stats: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch dashboard stats")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, stats)
}
