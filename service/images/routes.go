package images

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"github.com/weworkhere/server/service/auth"
)

type Handler struct {
	service *Service
	auth    *auth.Service
}

func NewHandler(service *Service, authService *auth.Service) *Handler {
	return &Handler{service: service, auth: authService}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/posts/{id}/images", h.auth.RequireAuth(h.UploadImages)).Methods("POST")
}

// UploadImages accepts multiple files under the "files" multipart field and
// returns the created image records in upload order.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		utils.WriteError(w, utils.BadRequest("Invalid post ID"))
		return
	}

	userID, err := utils.GetUserIDFromContext(r.Context())
	if err != nil {
		utils.WriteError(w, utils.Unauthorized("Unauthorized"))
		return
	}

	if err := r.ParseMultipartForm(50 << 20); err != nil {
		utils.WriteError(w, utils.BadRequest("Error parsing form"))
		return
	}

	files := r.MultipartForm.File["files"]
	created, err := h.service.UploadPostImages(uint(postID), userID, files)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string][]models.PostImage{
		"images": created,
	})
}
