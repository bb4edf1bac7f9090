package routes

import (
	"songswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterProfileRoutes sets up routes for profile operations under /api/profiles
func RegisterProfileRoutes(r *mux.Router, profiles controllers.ProfileManager, insights controllers.MoodInsightProvider) {
	controller := controllers.NewProfileController(profiles, insights)

	profileRouter := r.PathPrefix("/api/profiles").Subrouter()
	profileRouter.HandleFunc("", controller.HandleUpsertProfile).Methods("POST")
	profileRouter.HandleFunc("/{userId}", controller.HandleGetProfile).Methods("GET")
	profileRouter.HandleFunc("/{userId}/insights", controller.HandleGetInsights).Methods("GET")
}
