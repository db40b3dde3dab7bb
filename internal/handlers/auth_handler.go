package handlers

import (
	"net/http"
	"strings"

	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/security"
	"github.com/dinepoll/server/internal/services"
	"github.com/dinepoll/server/internal/validation"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service   *services.AuthService
	jwtSecret string
}

func NewAuthHandler(service *services.AuthService, jwtSecret string) *AuthHandler {
	return &AuthHandler{service: service, jwtSecret: jwtSecret}
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Scope    string `json:"scope"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Scope    string `json:"scope"`
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}

	if !checkField(c, req.Email, validation.ValidEmail, "email") ||
		!checkField(c, req.Password, validation.ValidPassword, "password") ||
		!checkField(c, req.Name, validation.ValidName, "name") {
		return
	}

	scope := models.Scope(req.Scope)
	if !scope.Valid() {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "scope")
		return
	}

	account, err := h.service.Register(req.Email, req.Password, req.Name, scope)
	if err != nil {
		if errors.Code(err) == errors.ErrCodeContentDuplicate {
			fail(c, http.StatusConflict, errors.ErrCodeContentDuplicate, "email")
			return
		}
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": account.Email})
}

// Signin handles POST /auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}

	if !checkField(c, req.Email, validation.ValidEmail, "email") ||
		!checkField(c, req.Password, validation.ValidPassword, "password") {
		return
	}

	scope := models.Scope(req.Scope)
	if !scope.Valid() {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "scope")
		return
	}

	token, err := h.service.Login(req.Email, req.Password, scope)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Account handles GET /auth/account. It extracts the bearer itself rather
// than relying on the Authenticate middleware: a missing token is a 400
// here, while a bad one is a 401.
func (h *AuthHandler) Account(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "token")
		return
	}

	if h.jwtSecret == "" {
		fail(c, http.StatusInternalServerError, errors.ErrCodeServerError, "jwt")
		return
	}

	claims, err := security.ValidateJWT(parts[1], h.jwtSecret)
	if err != nil {
		fail(c, http.StatusUnauthorized, errors.ErrCodeInvalidCredentials, "token")
		return
	}

	view, err := h.service.Account(claims)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// checkField mirrors the shared scalar-validation pattern: empty means
// content_missing, format failure means content_invalid.
func checkField(c *gin.Context, value string, validator func(string) bool, field string) bool {
	if value == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, field)
		return false
	}
	if !validator(value) {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, field)
		return false
	}
	return true
}
