package controllers

import (
	"context"
	"net/http"

	"songswipe_server/utils"

	"github.com/gorilla/mux"
)

// MatchLister is the slice of the match store the controller needs.
type MatchLister interface {
	ActiveMatchIDs(ctx context.Context, userID string) ([]string, error)
}

// MatchController struct
type MatchController struct {
	Matches MatchLister
}

// NewMatchController initializes the controller
func NewMatchController(matches MatchLister) *MatchController {
	return &MatchController{Matches: matches}
}

// HandleGetMatches - ids of users the given user has an active match with
func (c *MatchController) HandleGetMatches(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	matchIDs, err := c.Matches.ActiveMatchIDs(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to fetch matches")
		return
	}
	if matchIDs == nil {
		matchIDs = []string{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string][]string{"matchedUserIds": matchIDs})
}
