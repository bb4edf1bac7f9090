package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"songswipe_server/models"
	"songswipe_server/services"
	"songswipe_server/utils"
)

// SwipeProcessor is the slice of SwipeService the controller needs.
type SwipeProcessor interface {
	ProcessSwipe(ctx context.Context, swiperID, targetPostID string, direction models.SwipeDirection) (services.SwipeResult, error)
}

// SwipeController struct
type SwipeController struct {
	Swipes SwipeProcessor
}

// NewSwipeController initializes the controller
func NewSwipeController(swipes SwipeProcessor) *SwipeController {
	return &SwipeController{Swipes: swipes}
}

// HandleSwipe - record a swipe and report whether it completed a match
func (c *SwipeController) HandleSwipe(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SwiperID     string                `json:"swiperId"`
		TargetPostID string                `json:"targetPostId"`
		Direction    models.SwipeDirection `json:"direction"`
	}

	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.SwiperID == "" || request.TargetPostID == "" {
		utils.WriteError(w, http.StatusBadRequest, "swiperId and targetPostId are required")
		return
	}
	if !request.Direction.Valid() {
		utils.WriteError(w, http.StatusBadRequest, "direction must be like or pass")
		return
	}

	result, err := c.Swipes.ProcessSwipe(r.Context(), request.SwiperID, request.TargetPostID, request.Direction)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to process swipe")
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}
