package api

import (
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/weworkhere/server/config"
	"github.com/weworkhere/server/service/auth"
	"github.com/weworkhere/server/service/category"
	"github.com/weworkhere/server/service/forum"
	"github.com/weworkhere/server/service/images"
	"github.com/weworkhere/server/service/ocr"
	"gorm.io/gorm"
)

type APIServer struct {
	address string
	db      *gorm.DB
	cfg     *config.Config
}

func NewApiServer(address string, db *gorm.DB, cfg *config.Config) *APIServer {
	return &APIServer{
		address: address,
		db:      db,
		cfg:     cfg,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	authService := auth.NewService(s.db, s.cfg.SessionExpireHours)

	authHandler := auth.NewHandler(s.db, authService)
	authHandler.RegisterRoutes(subrouter)

	categoryHandler := category.NewHandler(s.db)
	categoryHandler.RegisterRoutes(subrouter)

	forumHandler := forum.NewPostHandler(s.db, authService)
	forumHandler.RegisterRoutes(subrouter)

	imageService := images.NewService(s.db, s.cfg.UploadDir, s.cfg.UploadURLPath)
	imageHandler := images.NewHandler(imageService, authService)
	imageHandler.RegisterRoutes(subrouter)

	ocrHandler := ocr.NewHandler(ocr.NewClient(s.cfg.OpenAIAPIKey, s.cfg.UseMockOCR))
	ocrHandler.RegisterRoutes(subrouter)

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy"}`))
	}).Methods("GET")

	// Uploaded files are served back under the configured URL prefix.
	fileServer := http.FileServer(http.Dir(s.cfg.UploadDir))
	router.PathPrefix(s.cfg.UploadURLPath + "/").Handler(http.StripPrefix(s.cfg.UploadURLPath+"/", fileServer))

	cors := handlers.CORS(
		handlers.AllowedOrigins(s.cfg.AllowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", auth.SessionTokenHeader}),
		handlers.AllowCredentials(),
	)

	log.Println("Server running at", s.address)
	return http.ListenAndServe(s.address, cors(router))
}
