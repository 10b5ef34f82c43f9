package auth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/gorm"
)

type Handler struct {
	db      *gorm.DB
	service *Service
}

func NewHandler(db *gorm.DB, service *Service) *Handler {
	return &Handler{db: db, service: service}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/auth/register", h.handleRegister).Methods("POST")
	router.HandleFunc("/auth/login", h.handleLogin).Methods("POST")
	router.HandleFunc("/auth/anonymous", h.handleCreateAnonymous).Methods("POST")
	router.HandleFunc("/auth/me", h.service.RequireAuth(h.handleMe)).Methods("GET")
	router.HandleFunc("/users/me", h.service.RequireAuth(h.handleUpdateProfile)).Methods("PUT")
}

type userResponse struct {
	ID                uint    `json:"id"`
	Nickname          string  `json:"nickname"`
	PreferredLanguage string  `json:"preferred_language"`
	CreatedAt         string  `json:"created_at"`
	SessionToken      *string `json:"session_token,omitempty"`
}

func newUserResponse(user *models.User, includeToken bool) userResponse {
	resp := userResponse{
		ID:                user.ID,
		Nickname:          user.Nickname,
		PreferredLanguage: user.PreferredLanguage,
		CreatedAt:         user.CreatedAt.UTC().Format(time.RFC3339),
	}
	if includeToken {
		resp.SessionToken = user.SessionToken
	}
	return resp
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	user, err := h.service.Register(req.Nickname, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, newUserResponse(user, false))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	user, err := h.service.Login(req.Nickname, req.Password)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newUserResponse(user, true))
}

func (h *Handler) handleCreateAnonymous(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Nickname string `json:"nickname"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	user, err := h.service.CreateAnonymous(req.Nickname)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, newUserResponse(user, true))
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		utils.WriteError(w, utils.NotFound("User not found"))
		return
	}

	utils.WriteJSON(w, http.StatusOK, newUserResponse(&user, false))
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	var patch ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	user, err := h.service.UpdateProfile(userID, patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, newUserResponse(user, false))
}
