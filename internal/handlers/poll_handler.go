package handlers

import (
	"net/http"

	"github.com/dinepoll/server/internal/middleware"
	"github.com/dinepoll/server/internal/services"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

// PollHandler serves the user-only poll workflow.
type PollHandler struct {
	service *services.PollService
}

func NewPollHandler(service *services.PollService) *PollHandler {
	return &PollHandler{service: service}
}

func (h *PollHandler) caller(c *gin.Context) (uint, bool) {
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

// List handles GET /polls.
func (h *PollHandler) List(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	polls, err := h.service.List(userID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, polls)
}

type pollCreateRequest struct {
	Name         string   `json:"name"`
	Participants []string `json:"participants"`
	RestaurantID uint     `json:"restaurantId"`
}

// Create handles POST /polls. The ownership cap and all inserts run in one
// transaction on the service side.
func (h *PollHandler) Create(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req pollCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.Name == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "name")
		return
	}

	poll, err := h.service.Create(userID, req.Name, req.Participants, req.RestaurantID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"poll": poll})
}

type pollUpdateRequest struct {
	PollID uint   `json:"pollId"`
	Name   string `json:"name"`
}

// Update handles PUT /polls.
func (h *PollHandler) Update(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req pollUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.PollID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "pollId")
		return
	}
	if req.Name == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "name")
		return
	}

	poll, err := h.service.Rename(req.PollID, userID, req.Name)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll})
}

type pollDeleteRequest struct {
	PollID uint `json:"pollId"`
}

// Delete handles DELETE /polls.
func (h *PollHandler) Delete(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req pollDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.PollID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "pollId")
		return
	}

	if err := h.service.Delete(req.PollID, userID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type participantAddRequest struct {
	PollID uint   `json:"pollId"`
	Email  string `json:"email"`
}

// AddParticipant handles POST /polls/participants.
func (h *PollHandler) AddParticipant(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req participantAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.PollID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "pollId")
		return
	}
	if req.Email == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "email")
		return
	}

	participant, err := h.service.AddParticipant(userID, req.PollID, req.Email)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, participant)
}

type participantRemoveRequest struct {
	PollID uint `json:"pollId"`
	UserID uint `json:"userId"`
}

// RemoveParticipant handles DELETE /polls/participants.
func (h *PollHandler) RemoveParticipant(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req participantRemoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.PollID == 0 || req.UserID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "pollId or userId")
		return
	}

	if err := h.service.RemoveParticipant(userID, req.PollID, req.UserID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type voteRequest struct {
	PollID   uint  `json:"pollId"`
	OptionID uint  `json:"optionId"`
	Vote     *bool `json:"vote"`
}

// Vote handles POST /polls/vote. Repeat votes overwrite in place.
func (h *PollHandler) Vote(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.PollID == 0 || req.OptionID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "pollId or optionId")
		return
	}
	if req.Vote == nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "vote")
		return
	}

	vote, err := h.service.Vote(userID, req.PollID, req.OptionID, *req.Vote)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vote)
}
