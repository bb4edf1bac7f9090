package controllers

import (
	"context"
	"encoding/json"
	"net/http"

	"songswipe_server/models"
	"songswipe_server/services"
	"songswipe_server/utils"

	"github.com/gorilla/mux"
)

// PostManager is the slice of PostService the controller needs.
type PostManager interface {
	CreatePost(ctx context.Context, req services.CreatePostRequest) (models.Post, error)
	ActivePostsByAuthor(ctx context.Context, authorID string) ([]models.Post, error)
}

// PostController struct
type PostController struct {
	Posts PostManager
}

// NewPostController initializes the controller
func NewPostController(posts PostManager) *PostController {
	return &PostController{Posts: posts}
}

// HandleCreatePost - share the song of the day
func (c *PostController) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var request services.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	post, err := c.Posts.CreatePost(r.Context(), request)
	if err != nil {
		status := statusForError(err)
		if status == http.StatusInternalServerError {
			// Validation failures surface as plain errors.
			status = http.StatusBadRequest
		}
		utils.WriteError(w, status, err.Error())
		return
	}

	utils.WriteJSON(w, http.StatusCreated, post)
}

// HandleGetUserPosts - the author's posts still inside the liveness window
func (c *PostController) HandleGetUserPosts(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	posts, err := c.Posts.ActivePostsByAuthor(r.Context(), userID)
	if err != nil {
		utils.WriteError(w, statusForError(err), "failed to fetch posts")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"posts": posts})
}
