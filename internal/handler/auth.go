package handler

import (
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/HarshaLokesh/phronetic-ai/internal/middleware"
	"github.com/HarshaLokesh/phronetic-ai/internal/models"
	"github.com/HarshaLokesh/phronetic-ai/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and the current-user endpoints.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
	Log       *logrus.Logger
}

func NewAuthHandler(db *gorm.DB, jwtSecret string, ttlMinutes int, log *logrus.Logger) *AuthHandler {
	if ttlMinutes <= 0 {
		ttlMinutes = 30
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlMinutes) * time.Minute,
		Log:       log,
	}
}

// usernames: 3-50 chars, letters, digits, underscore
var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,50}$`)

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"max=100"`
}

func userProfile(user *models.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"full_name":  user.FullName,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

// Register creates a user plus its default preferences in one transaction,
// so a failed create leaves no partial state.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, "Username must be 3-50 characters of letters, digits or underscore")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid email address")
		return
	}
	if len(req.Password) < 8 {
		util.Error(c, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	// usernames and emails are unique case-insensitively; stored as entered
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.InternalError(c)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Username already registered")
		return
	}
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?)", req.Email).
		Count(&count).Error; err != nil {
		util.InternalError(c)
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, "Email already registered")
		return
	}

	hash, err := util.HashPassword(req.Password)
	if err != nil {
		util.InternalError(c)
		return
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		IsActive:     true,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		prefs := models.DefaultPreference(user.ID)
		return tx.Create(&prefs).Error
	})
	if err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithField("username", user.Username).Info("new user registered")
	util.JSON(c, http.StatusCreated, util.Response{"user": userProfile(&user)})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues an access token. Unknown username
// and wrong password are indistinguishable to the caller.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(c, http.StatusUnauthorized, "Incorrect username or password")
		} else {
			util.InternalError(c)
		}
		return
	}

	if !util.CheckPassword(req.Password, user.PasswordHash) {
		util.Error(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	if !user.IsActive {
		util.Error(c, http.StatusUnauthorized, "Inactive user")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithField("username", user.Username).Info("user logged in")
	util.JSON(c, http.StatusOK, util.Response{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(h.TokenTTL.Seconds()),
	})
}

// Logout revokes the presented token by recording its jti until the token
// would have expired anyway.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	claims := middleware.CurrentClaims(c)
	if user == nil || claims == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if claims.ID == "" || claims.ExpiresAt == nil {
		util.Error(c, http.StatusBadRequest, "Token cannot be revoked")
		return
	}

	revoked := models.RevokedToken{
		JTI:       claims.ID,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	// re-revoking the same token is a no-op
	if err := h.DB.Where("jti = ?", revoked.JTI).
		FirstOrCreate(&revoked).Error; err != nil {
		util.InternalError(c)
		return
	}

	util.JSON(c, http.StatusOK, util.Response{"message": "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}
	util.JSON(c, http.StatusOK, util.Response{"user": userProfile(user)})
}

// GetPreferences returns the user's preferences, creating the default row on
// first access.
func (h *AuthHandler) GetPreferences(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	prefs, err := h.loadOrCreatePreferences(user.ID)
	if err != nil {
		util.InternalError(c)
		return
	}
	util.JSON(c, http.StatusOK, util.Response{"preferences": prefs})
}

type preferencesReq struct {
	DefaultCurrency     string `json:"default_currency" binding:"required,len=3"`
	Timezone            string `json:"timezone" binding:"required,max=50"`
	NotificationEnabled bool   `json:"notification_enabled"`
	Theme               string `json:"theme" binding:"required,max=20"`
	Language            string `json:"language" binding:"required,max=10"`
}

// UpdatePreferences overwrites the user's preferences.
func (h *AuthHandler) UpdatePreferences(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req preferencesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	currencyCode, err := util.ValidateCurrencyCode(req.DefaultCurrency)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid default currency")
		return
	}

	prefs, err := h.loadOrCreatePreferences(user.ID)
	if err != nil {
		util.InternalError(c)
		return
	}

	prefs.DefaultCurrency = currencyCode
	prefs.Timezone = req.Timezone
	prefs.NotificationEnabled = req.NotificationEnabled
	prefs.Theme = req.Theme
	prefs.Language = req.Language

	if err := h.DB.Save(prefs).Error; err != nil {
		util.InternalError(c)
		return
	}

	h.Log.WithField("username", user.Username).Info("user preferences updated")
	util.JSON(c, http.StatusOK, util.Response{"preferences": prefs})
}

func (h *AuthHandler) loadOrCreatePreferences(userID uint) (*models.UserPreference, error) {
	var prefs models.UserPreference
	err := h.DB.Where("user_id = ?", userID).First(&prefs).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prefs = models.DefaultPreference(userID)
		if err := h.DB.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}
