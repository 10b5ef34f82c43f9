package forum

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/weworkhere/server/cmd/utils"
	"github.com/weworkhere/server/service/auth"
	"gorm.io/gorm"
)

type PostHandler struct {
	service *Service
	auth    *auth.Service
}

func NewPostHandler(db *gorm.DB, authService *auth.Service) *PostHandler {
	return &PostHandler{service: NewService(db), auth: authService}
}

func (h *PostHandler) RegisterRoutes(router *mux.Router) {
	// Post routes
	router.HandleFunc("/posts", h.auth.RequireAuth(h.CreatePost)).Methods("POST")
	router.HandleFunc("/posts", h.GetPosts).Methods("GET")
	router.HandleFunc("/posts/{id}", h.GetPost).Methods("GET")
	router.HandleFunc("/posts/{id}", h.auth.RequireAuth(h.UpdatePost)).Methods("PUT")
	router.HandleFunc("/posts/{id}", h.auth.RequireAuth(h.DeletePost)).Methods("DELETE")

	// Like routes
	router.HandleFunc("/posts/{id}/like", h.auth.RequireAuth(h.ToggleLike)).Methods("POST")

	// Comment routes
	router.HandleFunc("/posts/{id}/comments", h.auth.RequireAuth(h.AddComment)).Methods("POST")
	router.HandleFunc("/posts/{id}/comments", h.GetComments).Methods("GET")
	router.HandleFunc("/posts/{id}/comments/{commentId}", h.auth.RequireAuth(h.DeleteComment)).Methods("DELETE")
}

func pathID(r *http.Request, name string) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, utils.BadRequest("Invalid " + name)
	}
	return uint(id), nil
}

// CreatePost creates a new post owned by the authenticated user.
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	var data PostCreate
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	post, err := h.service.CreatePost(userID, data)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, post)
}

// GetPosts retrieves posts newest-first with pagination and an optional
// category filter.
func (h *PostHandler) GetPosts(w http.ResponseWriter, r *http.Request) {
	page := utils.ParsePage(r.URL.Query())

	var categoryID *uint
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.WriteError(w, utils.BadRequest("Invalid category_id"))
			return
		}
		cid := uint(id)
		categoryID = &cid
	}

	list, err := h.service.ListPosts(page, categoryID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, list)
}

// GetPost retrieves a post and increments its view count.
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	post, err := h.service.GetPost(postID, true)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, post)
}

// UpdatePost applies a partial update; only the owner may modify a post.
func (h *PostHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	var patch PostUpdate
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	post, err := h.service.UpdatePost(postID, userID, patch)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, post)
}

// DeletePost deletes a post and everything hanging off it.
func (h *PostHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	if err := h.service.DeletePost(postID, userID); err != nil {
		utils.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike flips the caller's like on a post.
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	result, err := h.service.ToggleLike(postID, userID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, result)
}

// AddComment adds a comment to a post.
func (h *PostHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	var data CommentCreate
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid request body"))
		return
	}

	comment, err := h.service.CreateComment(postID, userID, data)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, comment)
}

// GetComments retrieves a post's comments newest-first with skip/limit.
func (h *PostHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	if skip < 0 {
		skip = 0
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 100
	}
	if limit > 200 {
		limit = 200
	}

	comments, err := h.service.ListComments(postID, skip, limit)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, comments)
}

// DeleteComment deletes a comment owned by the caller.
func (h *PostHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	commentID, err := pathID(r, "commentId")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	if err := h.service.DeleteComment(commentID, userID, postID); err != nil {
		utils.WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
