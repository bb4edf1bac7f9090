package routes

import (
	"songswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for match listings under /api/matches
func RegisterMatchRoutes(r *mux.Router, matches controllers.MatchLister) {
	controller := controllers.NewMatchController(matches)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("/{userId}", controller.HandleGetMatches).Methods("GET")
}
