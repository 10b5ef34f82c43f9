package category

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/gorm"
)

type Handler struct {
	db *gorm.DB
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/categories", h.GetCategories).Methods("GET")
}

// GetCategories returns all categories with their localized names.
func (h *Handler) GetCategories(w http.ResponseWriter, r *http.Request) {
	var categories []models.Category
	if err := h.db.Order("id ASC").Find(&categories).Error; err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, categories)
}
