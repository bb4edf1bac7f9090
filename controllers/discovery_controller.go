package controllers

import (
	"context"
	"net/http"

	"songswipe_server/services"
	"songswipe_server/utils"

	"github.com/gorilla/mux"
)

// CandidateProvider is the slice of DiscoveryService the controller needs.
type CandidateProvider interface {
	CandidatesFor(ctx context.Context, viewerID string) ([]services.Candidate, error)
}

// DiscoveryController struct
type DiscoveryController struct {
	Discovery CandidateProvider
}

// NewDiscoveryController initializes the controller
func NewDiscoveryController(discovery CandidateProvider) *DiscoveryController {
	return &DiscoveryController{Discovery: discovery}
}

// HandleGetCandidates - ranked discovery pool for a viewer
func (c *DiscoveryController) HandleGetCandidates(w http.ResponseWriter, r *http.Request) {
	viewerID := mux.Vars(r)["userId"]
	if viewerID == "" {
		utils.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	candidates, err := c.Discovery.CandidatesFor(r.Context(), viewerID)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to build discovery pool")
		return
	}
	if candidates == nil {
		candidates = []services.Candidate{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"candidates": candidates})
}
