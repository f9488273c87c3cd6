package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Garia-IT-Solutions/certificate-manager/internal/config"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/models"
	"github.com/Garia-IT-Solutions/certificate-manager/internal/utils"
)

type AuthHandler struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAuthHandler(db *gorm.DB, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, logger: logger.Named("auth")}
}

// JWT Claims struct
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Register godoc
// @Summary Register a new mariner profile
// @Description Creates the profile record that doubles as the user account.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} utils.Payload
// @Failure 400 {object} utils.Payload
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	var existing models.Profile
	err := h.db.Where("email = ?", input.Email).First(&existing).Error
	switch {
	case err == nil:
		utils.Error(w, http.StatusBadRequest, "An account already exists with this email")
		return
	case !errors.Is(err, gorm.ErrRecordNotFound):
		h.logger.Error("email lookup failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	profile := models.Profile{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hash),
		Skills:       []string{},
	}
	if err := h.db.Create(&profile).Error; err != nil {
		h.logger.Error("profile insert failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database insert failed")
		return
	}

	utils.Created(w, "Account registered successfully", profile)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Payload
// @Failure 401 {object} utils.Payload
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.Error(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var profile models.Profile
	err := h.db.Where("email = ?", input.Email).First(&profile).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		h.logger.Error("login lookup failed", zap.Error(err))
		utils.Error(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(input.Password)); err != nil {
		utils.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	expiration := time.Now().Add(24 * time.Hour)
	claims := &Claims{
		UserID: profile.ID.String(),
		Email:  profile.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.Envs.JWTSecret))
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to create token")
		return
	}

	isProd := config.Envs.Environment == "production"
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(time.Until(expiration).Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})

	utils.OK(w, "Login successful", nil)
}

// Logout godoc
// @Summary Log out the current session
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.Payload
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   config.Envs.Environment == "production",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.OK(w, "Logged out successfully", nil)
}
