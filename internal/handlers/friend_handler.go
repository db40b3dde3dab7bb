package handlers

import (
	"net/http"

	"github.com/dinepoll/server/internal/middleware"
	"github.com/dinepoll/server/internal/services"
	"github.com/dinepoll/server/internal/validation"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

// FriendHandler serves the user-only friend graph. Manager identities are
// rejected outright on every route.
type FriendHandler struct {
	service *services.FriendService
}

func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{service: service}
}

func (h *FriendHandler) caller(c *gin.Context) (uint, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "userId")
		return 0, false
	}
	if identity.Manager {
		fail(c, http.StatusBadRequest, errors.ErrCodeAccessDenied, "unauthorized")
		return 0, false
	}
	return identity.ID, true
}

// List handles GET /friends.
func (h *FriendHandler) List(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	friends, err := h.service.Friends(userID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, friends)
}

// Requests handles GET /friends/requests.
func (h *FriendHandler) Requests(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	requests, err := h.service.Requests(userID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

type friendCreateRequest struct {
	Email string `json:"email"`
}

// Create handles POST /friends.
func (h *FriendHandler) Create(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req friendCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if !checkField(c, req.Email, validation.ValidEmail, "email") {
		return
	}

	link, err := h.service.Request(userID, req.Email)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

type friendUpdateRequest struct {
	RequestID uint   `json:"requestId"`
	Status    string `json:"status"`
}

// Update handles PUT /friends.
func (h *FriendHandler) Update(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req friendUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.RequestID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "requestId")
		return
	}
	if req.Status == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "status")
		return
	}

	link, err := h.service.Update(userID, req.RequestID, req.Status)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

type friendDeleteRequest struct {
	RequestID uint `json:"requestId"`
}

// Delete handles DELETE /friends.
func (h *FriendHandler) Delete(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req friendDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.RequestID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "requestId")
		return
	}

	if err := h.service.Delete(userID, req.RequestID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
