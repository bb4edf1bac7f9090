package main

import (
	"context"
	"net/http"
	"os"

	"songswipe_server/config"
	"songswipe_server/routes"
	"songswipe_server/services"
	"songswipe_server/socket"
	"songswipe_server/utils"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLogger := zerolog.New(os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, err := zerolog.ParseLevel(cfg.Server.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	dynamoClient, err := services.InitializeDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize DynamoDB client")
	}
	dynamoService := &services.DynamoService{
		Client: dynamoClient,
		Logger: logger.With().Str("component", "dynamo").Logger(),
	}

	// Stores
	profileStore := &services.DynamoProfileStore{Dynamo: dynamoService}
	postStore := &services.DynamoPostStore{Dynamo: dynamoService}
	swipeStore := &services.DynamoSwipeStore{Dynamo: dynamoService}
	matchStore := &services.DynamoMatchStore{Dynamo: dynamoService}

	clock, err := services.NewClock(cfg.Liveness.BoundaryHour, cfg.Liveness.Timezone)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid liveness configuration")
	}

	// The song catalog is optional; without credentials posts simply keep
	// whatever audio features the client supplied.
	var catalog services.AudioFeatureSource
	if cfg.Catalog.ClientID != "" {
		songCatalog, err := services.NewSongCatalog(ctx, cfg.Catalog.ClientID, cfg.Catalog.ClientSecret,
			logger.With().Str("component", "catalog").Logger())
		if err != nil {
			logger.Warn().Err(err).Msg("song catalog disabled")
		} else {
			catalog = songCatalog
		}
	}

	socketServer := socket.NewServer(logger.With().Str("component", "socket").Logger())
	go func() {
		if err := socketServer.Serve(); err != nil {
			logger.Error().Err(err).Msg("socket server stopped")
		}
	}()
	defer socketServer.Close()

	// Services
	preferenceService := &services.PreferenceService{
		Profiles: profileStore,
		Posts:    postStore,
		Swipes:   swipeStore,
		Window:   cfg.Discovery.LearnerWindow,
		Logger:   logger.With().Str("component", "learner").Logger(),
	}
	discoveryService := &services.DiscoveryService{
		Profiles:    profileStore,
		Posts:       postStore,
		Swipes:      swipeStore,
		Matches:     matchStore,
		Learner:     preferenceService,
		Clock:       clock,
		PoolSize:    cfg.Discovery.PoolSize,
		Parallelism: cfg.Discovery.Parallelism,
		Logger:      logger.With().Str("component", "discovery").Logger(),
	}
	swipeService := &services.SwipeService{
		Profiles: profileStore,
		Posts:    postStore,
		Swipes:   swipeStore,
		Matches:  matchStore,
		Notifier: &socket.MatchNotifier{Server: socketServer, Logger: logger.With().Str("component", "socket").Logger()},
		Logger:   logger.With().Str("component", "swipes").Logger(),
	}
	postService := &services.PostService{
		Posts:    postStore,
		Profiles: profileStore,
		Catalog:  catalog,
		Clock:    clock,
		Logger:   logger.With().Str("component", "posts").Logger(),
	}
	profileService := &services.ProfileService{
		Profiles: profileStore,
		Logger:   logger.With().Str("component", "profiles").Logger(),
	}
	insightService := &services.InsightService{
		Posts:          postStore,
		Swipes:         swipeStore,
		Window:         cfg.Insights.Window,
		NumClusters:    cfg.Insights.NumClusters,
		MinClusterSize: cfg.Insights.MinClusterSize,
		Logger:         logger.With().Str("component", "insights").Logger(),
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}).Methods("GET")

	r.Handle("/socket.io/", socketServer)

	// Register routes
	routes.RegisterProfileRoutes(r, profileService, insightService)
	routes.RegisterPostRoutes(r, postService)
	routes.RegisterDiscoveryRoutes(r, discoveryService)
	routes.RegisterSwipeRoutes(r, swipeService)
	routes.RegisterMatchRoutes(r, matchStore)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	logger.Info().Str("port", cfg.Server.Port).Msg("starting server")
	if err := http.ListenAndServe(":"+cfg.Server.Port, corsHandler); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
