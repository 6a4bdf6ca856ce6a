package handlers

import (
	"net/http"
	"time"

	"foodadmin/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type loginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	repo := repositories.AdminRepo{DB: a.DB}
	admin, hash, err := repo.GetForLogin(req.Login)
	if err != nil {
		// never reveal whether the account exists
		RespondError(c, http.StatusUnauthorized, "wrong username or password", nil)
		return
	}
	if admin.Status != "active" {
		RespondError(c, http.StatusUnauthorized, "account is disabled", nil)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		RespondError(c, http.StatusUnauthorized, "wrong username or password", nil)
		return
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"role":     string(admin.Role),
		"exp":      time.Now().Add(a.Env.JWTTTL).Unix(),
	}
	if admin.CountryID != nil {
		claims["country_id"] = *admin.CountryID
	}
	if admin.CityID != nil {
		claims["city_id"] = *admin.CityID
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(a.Env.JWTSecret))
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue token", nil)
		return
	}

	Respond(c, http.StatusOK, "login ok", gin.H{
		"token": token,
		"admin": admin,
	})
}
