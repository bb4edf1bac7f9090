package routes

import (
	"songswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for post operations under /api/posts
func RegisterPostRoutes(r *mux.Router, posts controllers.PostManager) {
	controller := controllers.NewPostController(posts)

	postRouter := r.PathPrefix("/api/posts").Subrouter()
	postRouter.HandleFunc("", controller.HandleCreatePost).Methods("POST")
	postRouter.HandleFunc("/user/{userId}", controller.HandleGetUserPosts).Methods("GET")
}
