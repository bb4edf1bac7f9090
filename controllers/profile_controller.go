package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"songswipe_server/models"
	"songswipe_server/services"
	"songswipe_server/utils"

	"github.com/gorilla/mux"
)

// ProfileManager is the slice of ProfileService the controller needs.
type ProfileManager interface {
	GetProfile(ctx context.Context, userID string) (models.UserProfile, error)
	UpsertProfile(ctx context.Context, profile models.UserProfile) (models.UserProfile, error)
}

// MoodInsightProvider is the slice of InsightService the controller needs.
type MoodInsightProvider interface {
	MoodEras(ctx context.Context, userID string) (services.MoodInsights, error)
}

// ProfileController struct
type ProfileController struct {
	Profiles ProfileManager
	Insights MoodInsightProvider
}

// NewProfileController initializes the controller
func NewProfileController(profiles ProfileManager, insights MoodInsightProvider) *ProfileController {
	return &ProfileController{Profiles: profiles, Insights: insights}
}

// HandleUpsertProfile - create or update a profile's identity and questionnaire
func (c *ProfileController) HandleUpsertProfile(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if profile.UserID == "" {
		utils.WriteError(w, http.StatusBadRequest, "userId is required")
		return
	}

	saved, err := c.Profiles.UpsertProfile(r.Context(), profile)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to save profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, saved)
}

// HandleGetProfile - fetch one profile by user id
func (c *ProfileController) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	profile, err := c.Profiles.GetProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.WriteError(w, http.StatusNotFound, "profile not found")
			return
		}
		utils.WriteError(w, statusForError(err), "failed to fetch profile")
		return
	}

	utils.WriteJSON(w, http.StatusOK, profile)
}

// HandleGetInsights - mood eras clustered from the user's liked posts
func (c *ProfileController) HandleGetInsights(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	insights, err := c.Insights.MoodEras(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to compute insights")
		return
	}

	utils.WriteJSON(w, http.StatusOK, insights)
}
