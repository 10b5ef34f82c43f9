package images

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/gorm"
)

const MaxImageSize = 10 << 20 // 10 MB

type Service struct {
	db        *gorm.DB
	uploadDir string
	urlPrefix string
}

func NewService(db *gorm.DB, uploadDir, urlPrefix string) *Service {
	return &Service{
		db:        db,
		uploadDir: uploadDir,
		urlPrefix: strings.TrimRight(urlPrefix, "/"),
	}
}

// UploadPostImages validates the whole batch, writes each file under a fresh
// random name, and appends image rows after the post's existing ones. Any
// invalid file aborts the batch before anything is persisted.
func (s *Service) UploadPostImages(postID, userID uint, files []*multipart.FileHeader) ([]models.PostImage, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Post not found")
		}
		return nil, err
	}

	if err := utils.RequireOwner(post.UserID, userID); err != nil {
		return nil, err
	}

	if len(files) == 0 {
		return nil, utils.BadRequest("No files provided")
	}

	for _, header := range files {
		contentType := header.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			return nil, utils.BadRequest("Only image files are allowed")
		}
		if header.Size > MaxImageSize {
			return nil, utils.BadRequest(fmt.Sprintf("File size exceeds maximum of %d MB", MaxImageSize/(1<<20)))
		}
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return nil, utils.Internal("Failed to create upload directory")
	}

	var startOrder int64
	if err := s.db.Model(&models.PostImage{}).Where("post_id = ?", postID).Count(&startOrder).Error; err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(files))
	for _, header := range files {
		filename := fmt.Sprintf("%s-%s%s",
			time.Now().Format("20060102"),
			uuid.New().String(),
			fileExtension(header),
		)
		if err := s.saveFile(header, filepath.Join(s.uploadDir, filename)); err != nil {
			return nil, err
		}
		urls = append(urls, s.urlPrefix+"/"+filename)
	}

	tx := s.db.Begin()
	created := make([]models.PostImage, 0, len(urls))
	for i, url := range urls {
		image := models.PostImage{
			PostID:    postID,
			URL:       url,
			SortOrder: int(startOrder) + i,
		}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, image)
	}

	// First upload for a post with no primary image backfills image_url.
	if post.ImageURL == nil && len(urls) > 0 {
		if err := tx.Model(&post).UpdateColumn("image_url", urls[0]).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return created, nil
}

// fileExtension prefers the original filename's extension, falling back to a
// guess from the declared content type.
func fileExtension(header *multipart.FileHeader) string {
	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != "" {
		return ext
	}
	exts, err := mime.ExtensionsByType(header.Header.Get("Content-Type"))
	if err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ""
}

func (s *Service) saveFile(header *multipart.FileHeader, destination string) error {
	src, err := header.Open()
	if err != nil {
		return utils.Internal("Failed to read uploaded file")
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return utils.Internal("Failed to create file")
	}

	_, copyErr := io.Copy(dst, src)
	closeErr := dst.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(destination)
		return utils.Internal("Failed to save file")
	}

	// Post-hoc verification against truncated or failed writes.
	info, err := os.Stat(destination)
	if err != nil || info.Size() == 0 {
		os.Remove(destination)
		return utils.Internal("Failed to save file")
	}
	return nil
}
