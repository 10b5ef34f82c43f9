package models

import "time"

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	CategoryID  *uint     `gorm:"column:category_id;index" json:"category_id,omitempty"`
	Title       string    `gorm:"column:title;size:200;not null" json:"title"`
	Content     string    `gorm:"column:content;type:text;not null" json:"content"`
	ImageURL    *string   `gorm:"column:image_url;size:500" json:"image_url,omitempty"`
	ViewCount   int       `gorm:"column:view_count;not null;default:0" json:"view_count"`
	LikeCount   int       `gorm:"column:like_count;not null;default:0" json:"like_count"`
	IsAnonymous bool      `gorm:"column:is_anonymous;not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User      *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category  *Category   `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Images    []PostImage `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Comments  []Comment   `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions []Reaction  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

// PostImage rows are ordered within a post; the first one is mirrored into
// the post's image_url.
type PostImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"column:post_id;not null;index" json:"post_id"`
	URL       string    `gorm:"column:url;size:500;not null" json:"url"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PostID      uint      `gorm:"column:post_id;not null;index" json:"post_id"`
	UserID      uint      `gorm:"column:user_id;not null;index" json:"user_id"`
	Content     string    `gorm:"column:content;type:text;not null" json:"content"`
	IsAnonymous bool      `gorm:"column:is_anonymous;not null;default:false" json:"is_anonymous"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Reaction enforces at most one reaction of a given type per user per post.
type Reaction struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"column:post_id;not null;index;uniqueIndex:uq_post_user_reaction_type" json:"post_id"`
	UserID uint   `gorm:"column:user_id;not null;index;uniqueIndex:uq_post_user_reaction_type" json:"user_id"`
	Type   string `gorm:"column:type;size:20;not null;uniqueIndex:uq_post_user_reaction_type" json:"type"`
}

const ReactionLike = "like"
