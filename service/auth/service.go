package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/weworkhere/server/cmd/models"
	"github.com/weworkhere/server/cmd/utils"
	"gorm.io/gorm"
)

// Login failures share one message so callers can't probe which nicknames
// exist.
const loginFailedMessage = "Invalid nickname or password"

var supportedLanguages = map[string]bool{
	"ko": true,
	"en": true,
	"vi": true,
	"ne": true,
}

type Service struct {
	db         *gorm.DB
	sessionTTL time.Duration
}

func NewService(db *gorm.DB, sessionExpireHours int) *Service {
	return &Service{
		db:         db,
		sessionTTL: time.Duration(sessionExpireHours) * time.Hour,
	}
}

// Register creates a credentialed account. No session is issued; the user
// logs in separately.
func (s *Service) Register(nickname, password string) (*models.User, error) {
	if nickname == "" || password == "" {
		return nil, utils.BadRequest("Nickname and password are required")
	}

	if taken, err := s.nicknameTaken(nickname, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, utils.Conflict("Nickname is already in use")
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return nil, utils.Internal("Error hashing password")
	}

	user := models.User{
		Nickname:     nickname,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login verifies credentials and rotates the session token.
func (s *Service) Login(nickname, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("nickname = ?", nickname).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized(loginFailedMessage)
		}
		return nil, err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return nil, utils.Unauthorized(loginFailedMessage)
	}

	if err := s.issueSession(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAnonymous creates an account with a system-generated throwaway
// password and an immediate session token. The secret is never returned.
func (s *Service) CreateAnonymous(nickname string) (*models.User, error) {
	if nickname == "" {
		return nil, utils.BadRequest("Nickname is required")
	}

	if taken, err := s.nicknameTaken(nickname, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, utils.Conflict("Nickname is already in use")
	}

	throwaway := make([]byte, 32)
	if _, err := rand.Read(throwaway); err != nil {
		return nil, utils.Internal("Error generating credentials")
	}
	passwordHash, err := HashPassword(hex.EncodeToString(throwaway))
	if err != nil {
		return nil, utils.Internal("Error hashing password")
	}

	user := models.User{
		Nickname:     nickname,
		PasswordHash: passwordHash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	if err := s.issueSession(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ValidateSession resolves a token to its user. Expired tokens are rejected
// but not deleted; expiry is anchored to the issuance timestamp, so every
// login restarts the countdown.
func (s *Service) ValidateSession(token string) (*models.User, error) {
	if token == "" {
		return nil, utils.Unauthorized("Session token required")
	}

	var user models.User
	if err := s.db.Where("session_token = ?", token).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.Unauthorized("Invalid session token")
		}
		return nil, err
	}

	issuedAt := user.CreatedAt
	if user.SessionIssuedAt != nil {
		issuedAt = *user.SessionIssuedAt
	}
	if time.Now().After(issuedAt.Add(s.sessionTTL)) {
		return nil, utils.Unauthorized("Session expired")
	}

	return &user, nil
}

type ProfileUpdate struct {
	Nickname          *string `json:"nickname"`
	PreferredLanguage *string `json:"preferred_language"`
}

// UpdateProfile applies a partial profile update with a uniqueness re-check
// when the nickname changes.
func (s *Service) UpdateProfile(userID uint, patch ProfileUpdate) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFound("User not found")
		}
		return nil, err
	}

	if patch.Nickname != nil && *patch.Nickname != user.Nickname {
		if *patch.Nickname == "" {
			return nil, utils.BadRequest("Nickname cannot be empty")
		}
		if taken, err := s.nicknameTaken(*patch.Nickname, user.ID); err != nil {
			return nil, err
		} else if taken {
			return nil, utils.Conflict("Nickname is already in use")
		}
		user.Nickname = *patch.Nickname
	}

	if patch.PreferredLanguage != nil {
		if !supportedLanguages[*patch.PreferredLanguage] {
			return nil, utils.BadRequest("Unsupported language")
		}
		user.PreferredLanguage = *patch.PreferredLanguage
	}

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) issueSession(user *models.User) error {
	token, err := GenerateSessionToken()
	if err != nil {
		return utils.Internal("Error generating session token")
	}
	now := time.Now()
	user.SessionToken = &token
	user.SessionIssuedAt = &now
	return s.db.Model(user).Updates(map[string]interface{}{
		"session_token":     token,
		"session_issued_at": now,
	}).Error
}

func (s *Service) nicknameTaken(nickname string, excludeUserID uint) (bool, error) {
	var count int64
	query := s.db.Model(&models.User{}).Where("nickname = ?", nickname)
	if excludeUserID != 0 {
		query = query.Where("id <> ?", excludeUserID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
