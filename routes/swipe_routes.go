package routes

import (
	"songswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterSwipeRoutes sets up routes for swipe submission under /api/swipes
func RegisterSwipeRoutes(r *mux.Router, swipes controllers.SwipeProcessor) {
	controller := controllers.NewSwipeController(swipes)

	swipeRouter := r.PathPrefix("/api/swipes").Subrouter()
	swipeRouter.HandleFunc("", controller.HandleSwipe).Methods("POST")
}
