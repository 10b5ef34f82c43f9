package models

import (
	"time"
)

type User struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Nickname          string     `gorm:"column:nickname;size:50;uniqueIndex;not null" json:"nickname"`
	PasswordHash      string     `gorm:"column:password_hash;size:255;not null" json:"-"`
	SessionToken      *string    `gorm:"column:session_token;size:255;uniqueIndex" json:"-"`
	SessionIssuedAt   *time.Time `gorm:"column:session_issued_at" json:"-"`
	PreferredLanguage string     `gorm:"column:preferred_language;size:5;not null;default:ko" json:"preferred_language"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	Posts     []Post     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Comments  []Comment  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions []Reaction `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
