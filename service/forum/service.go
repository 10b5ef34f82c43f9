package forum

import (
	"errors"

	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type PostCreate struct {
	CategoryID  *uint    `json:"category_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ImageURLs   []string `json:"image_urls"`
	ImageURL    *string  `json:"image_url"` // legacy single-image field
	IsAnonymous bool     `json:"is_anonymous"`
}

// normalizeImageURLs folds the legacy single-URL field into the list form.
// nil means "no image input at all", an empty slice means "explicitly none".
func normalizeImageURLs(urls []string, single *string) []string {
	if urls != nil {
		normalized := make([]string, 0, len(urls))
		for _, u := range urls {
			if u != "" {
				normalized = append(normalized, u)
			}
		}
		return normalized
	}
	if single != nil {
		if *single == "" {
			return []string{}
		}
		return []string{*single}
	}
	return nil
}

// CreatePost persists a post owned by userID; supplied image URLs become
// ordered image rows and the first one is mirrored into image_url.
func (s *Service) CreatePost(userID uint, data PostCreate) (*models.Post, error) {
	if data.Title == "" || data.Content == "" {
		return nil, utils.BadRequest("Title and content are required")
	}

	urls := normalizeImageURLs(data.ImageURLs, data.ImageURL)

	post := models.Post{
		UserID:      userID,
		CategoryID:  data.CategoryID,
		Title:       data.Title,
		Content:     data.Content,
		IsAnonymous: data.IsAnonymous,
	}
	if len(urls) > 0 {
		post.ImageURL = &urls[0]
	}

	tx := s.db.Begin()
	if err := tx.Create(&post).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := createImageRows(tx, post.ID, urls, 0); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetPost(post.ID, false)
}

// GetPost loads a post with its ordered images; incrementView bumps the view
// counter atomically before the read.
func (s *Service) GetPost(postID uint, incrementView bool) (*models.Post, error) {
	if incrementView {
		if err := s.IncrementViewCount(postID); err != nil {
			return nil, err
		}
	}

	var post models.Post
	err := s.db.
		Preload("User").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		First(&post, postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Post not found")
		}
		return nil, err
	}
	return &post, nil
}

type PostList struct {
	Posts      []models.Post `json:"posts"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// ListPosts returns a newest-first page of posts, optionally filtered by
// category.
func (s *Service) ListPosts(page utils.Page, categoryID *uint) (*PostList, error) {
	query := s.db.Model(&models.Post{})
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := query.
		Preload("User").
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return &PostList{
		Posts:      posts,
		Total:      total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: utils.TotalPages(total, page.PageSize),
	}, nil
}

// UpdatePost applies a partial update to an owned post. Replacing images
// deletes the old rows before inserting the new ones in order; image_url is
// recomputed from the new first image.
func (s *Service) UpdatePost(postID, userID uint, patch PostUpdate) (*models.Post, error) {
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

	if patch.Title.Set && patch.Title.Valid {
		if patch.Title.Value == "" {
			return nil, utils.BadRequest("Title cannot be empty")
		}
		post.Title = patch.Title.Value
	}
	if patch.Content.Set && patch.Content.Valid {
		if patch.Content.Value == "" {
			return nil, utils.BadRequest("Content cannot be empty")
		}
		post.Content = patch.Content.Value
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Valid {
			post.CategoryID = &patch.CategoryID.Value
		} else {
			post.CategoryID = nil
		}
	}

	tx := s.db.Begin()

	if patch.ImageURLs.Set {
		var urls []string
		if patch.ImageURLs.Valid {
			urls = normalizeImageURLs(patch.ImageURLs.Value, nil)
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.PostImage{}).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := createImageRows(tx, post.ID, urls, 0); err != nil {
			tx.Rollback()
			return nil, err
		}
		if len(urls) > 0 {
			post.ImageURL = &urls[0]
		} else {
			post.ImageURL = nil
		}
	}

	if err := tx.Save(&post).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return s.GetPost(post.ID, false)
}

// DeletePost removes an owned post together with its comments, reactions and
// images.
func (s *Service) DeletePost(postID, userID uint) error {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Post not found")
		}
		return err
	}

	if err := utils.RequireOwner(post.UserID, userID); err != nil {
		return err
	}

	tx := s.db.Begin()
	for _, model := range []interface{}{&models.Reaction{}, &models.Comment{}, &models.PostImage{}} {
		if err := tx.Where("post_id = ?", postID).Delete(model).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// IncrementViewCount bumps the counter in a single SQL statement; counters
// are never overwritten directly.
func (s *Service) IncrementViewCount(postID uint) error {
	return s.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (s *Service) IncrementLikeCount(postID uint) error {
	return s.db.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error
}

// DecrementLikeCount is floor-clamped at zero.
func (s *Service) DecrementLikeCount(postID uint) error {
	return s.db.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}

type LikeResult struct {
	PostID    uint `json:"post_id"`
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}

// ToggleLike is an idempotent per-user toggle keyed by the reactions table's
// (post, user, type) uniqueness: a second toggle undoes the first.
func (s *Service) ToggleLike(postID, userID uint) (*LikeResult, error) {
	var post models.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("Post not found")
		}
		return nil, err
	}

	tx := s.db.Begin()

	var liked bool
	var existing models.Reaction
	err := tx.Where("post_id = ? AND user_id = ? AND type = ?", postID, userID, models.ReactionLike).
		First(&existing).Error
	switch {
	case err == nil:
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(&models.Post{}).Where("id = ? AND like_count > 0", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		reaction := models.Reaction{PostID: postID, UserID: userID, Type: models.ReactionLike}
		if err := tx.Create(&reaction).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", 1)).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
		liked = true
	default:
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	var refreshed models.Post
	if err := s.db.First(&refreshed, postID).Error; err != nil {
		return nil, err
	}

	return &LikeResult{PostID: postID, Liked: liked, LikeCount: refreshed.LikeCount}, nil
}

type CommentCreate struct {
	Content     string `json:"content"`
	IsAnonymous bool   `json:"is_anonymous"`
}

func (s *Service) CreateComment(postID, userID uint, data CommentCreate) (*models.Comment, error) {
	if data.Content == "" {
		return nil, utils.BadRequest("Content is required")
	}

	var count int64
	if err := s.db.Model(&models.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, utils.NotFound("Post not found")
	}

	comment := models.Comment{
		PostID:      postID,
		UserID:      userID,
		Content:     data.Content,
		IsAnonymous: data.IsAnonymous,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListComments returns a post's comments newest-first.
func (s *Service) ListComments(postID uint, skip, limit int) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.
		Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes an owned comment. A comment whose post_id disagrees
// with the path's post id reads as not found, so existence on other posts
// doesn't leak.
func (s *Service) DeleteComment(commentID, userID, postID uint) error {
	var comment models.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound("Comment not found")
		}
		return err
	}

	if comment.PostID != postID {
		return utils.NotFound("Comment not found")
	}

	if err := utils.RequireOwner(comment.UserID, userID); err != nil {
		return err
	}

	return s.db.Delete(&comment).Error
}

func createImageRows(tx *gorm.DB, postID uint, urls []string, startOrder int) error {
	for i, url := range urls {
		image := models.PostImage{
			PostID:    postID,
			URL:       url,
			SortOrder: startOrder + i,
		}
		if err := tx.Create(&image).Error; err != nil {
			return err
		}
	}
	return nil
}
