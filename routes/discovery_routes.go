package routes

import (
	"songswipe_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterDiscoveryRoutes sets up routes for discovery under /api/discovery
func RegisterDiscoveryRoutes(r *mux.Router, discovery controllers.CandidateProvider) {
	controller := controllers.NewDiscoveryController(discovery)

	discoveryRouter := r.PathPrefix("/api/discovery").Subrouter()
	discoveryRouter.HandleFunc("/{userId}", controller.HandleGetCandidates).Methods("GET")
}
