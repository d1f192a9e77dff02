package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/table-reservations/internal/config"
	"github.com/BruksfildServices01/table-reservations/internal/domain/access"
	"github.com/BruksfildServices01/table-reservations/internal/httperr"
	"github.com/BruksfildServices01/table-reservations/internal/httpresp"
	"github.com/BruksfildServices01/table-reservations/internal/models"
	"github.com/BruksfildServices01/table-reservations/internal/validators"
)

type AuthHandler struct {
	db          *gorm.DB
	config      *config.Config
	emailDomain func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		db:          db,
		config:      cfg,
		emailDomain: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username   string `json:"username" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	Password   string `json:"password" binding:"required,min=6"`
	Phone      string `json:"phone"`
	NationalID string `json:"national_id"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates a client account. Staff accounts are created by an admin.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	user, ok := h.createUser(c, req, access.RoleClient)
	if !ok {
		return
	}

	token, err := h.generateToken(user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	httpresp.Created(c, gin.H{
		"user":  userView(user),
		"token": token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var user models.User
	if err := h.db.
		Where("username = ?", validators.NormalizeUsername(req.Username)).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
			return
		}
		httperr.Internal(c, "internal_error", "Internal server error.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid username or password.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue token.")
		return
	}

	httpresp.OK(c, gin.H{
		"user":  userView(&user),
		"token": token,
	})
}

// --------- Shared ---------

// createUser validates and stores a new account, writing the error response
// itself when it fails.
func (h *AuthHandler) createUser(c *gin.Context, req RegisterRequest, role access.Role) (*models.User, bool) {
	username := validators.NormalizeUsername(req.Username)
	if !validators.IsUsernameValid(username) {
		httperr.BadRequest(c, "invalid_username", "Username must be 3-50 lowercase letters, digits, dots, dashes or underscores.")
		return nil, false
	}

	email := validators.NormalizeEmail(req.Email)
	if email != "" {
		if !validators.IsEmailFormatValid(email) {
			httperr.BadRequest(c, "invalid_email", "Invalid e-mail address.")
			return nil, false
		}
		if !h.emailDomain(email) {
			httperr.BadRequest(c, "invalid_email_domain", "The e-mail domain does not look valid.")
			return nil, false
		}
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		httperr.Internal(c, "internal_error", "Internal server error.")
		return nil, false
	}
	if count > 0 {
		httperr.Conflict(c, "username_taken", "Username already in use.")
		return nil, false
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not store password.")
		return nil, false
	}

	user := models.User{
		Username:     username,
		Name:         req.Name,
		Email:        email,
		Phone:        req.Phone,
		NationalID:   req.NationalID,
		PasswordHash: string(hashed),
		Role:         string(role),
	}

	if err := h.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.Conflict(c, "username_taken", "Username already in use.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create user.")
		return nil, false
	}

	return &user, true
}

func userView(u *models.User) gin.H {
	return gin.H{
		"id":          u.ID,
		"username":    u.Username,
		"name":        u.Name,
		"email":       u.Email,
		"phone":       u.Phone,
		"national_id": u.NationalID,
		"role":        u.Role,
	}
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
