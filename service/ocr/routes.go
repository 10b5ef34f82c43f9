package ocr

import (
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/weworkhere/server/cmd/utils"
)

const maxDocumentSize = 20 << 20 // 20 MB

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/ocr/analyze", h.AnalyzeDocument).Methods("POST")
	router.HandleFunc("/ocr/health", h.Health).Methods("GET")
	router.HandleFunc("/ocr/languages", h.GetLanguages).Methods("GET")
}

type analyzeResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    *Result `json:"data"`
}

// AnalyzeDocument runs the document image in the "file" multipart field
// through the vision model.
func (h *Handler) AnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentSize); err != nil {
		utils.WriteError(w, utils.BadRequest("Error parsing form"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, utils.BadRequest("File is required"))
		return
	}
	defer file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		utils.WriteError(w, utils.BadRequest("Only image files are allowed"))
		return
	}

	image, err := io.ReadAll(io.LimitReader(file, maxDocumentSize+1))
	if err != nil {
		utils.WriteError(w, utils.Internal("Failed to read file"))
		return
	}
	if len(image) > maxDocumentSize {
		utils.WriteError(w, utils.BadRequest("File size must be 20MB or less"))
		return
	}

	sourceLang := queryDefault(r, "source_lang", "ko")
	targetLang := queryDefault(r, "target_lang", "vi")

	result := h.client.Analyze(r.Context(), image, sourceLang, targetLang)

	utils.WriteJSON(w, http.StatusOK, analyzeResponse{
		Success: true,
		Message: "Document analyzed",
		Data:    result,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	engine := "GPT-4o Vision"
	if h.client.Mock() {
		engine = "mock"
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":              "healthy",
		"engine":              engine,
		"supported_languages": SupportedLanguages,
	})
}

type language struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	NativeName string `json:"native_name"`
}

func (h *Handler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string][]language{
		"languages": {
			{Code: "ko", Name: "Korean", NativeName: "한국어"},
			{Code: "vi", Name: "Vietnamese", NativeName: "Tiếng Việt"},
			{Code: "en", Name: "English", NativeName: "English"},
			{Code: "ne", Name: "Nepali", NativeName: "नेपाली"},
		},
	})
}

func queryDefault(r *http.Request, key, fallback string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return fallback
}
