package handlers

import (
	"net/http"
	"strconv"

	"github.com/dinepoll/server/internal/middleware"
	"github.com/dinepoll/server/internal/services"
	"github.com/dinepoll/server/pkg/errors"
	"github.com/gin-gonic/gin"
)

type RestaurantHandler struct {
	restaurants *services.RestaurantService
	favorites   *services.FavoriteService
}

func NewRestaurantHandler(restaurants *services.RestaurantService, favorites *services.FavoriteService) *RestaurantHandler {
	return &RestaurantHandler{restaurants: restaurants, favorites: favorites}
}

func (h *RestaurantHandler) identity(c *gin.Context) (middleware.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "userId")
		return middleware.Identity{}, false
	}
	return identity, true
}

func (h *RestaurantHandler) userOnly(c *gin.Context) (uint, bool) {
	identity, ok := h.identity(c)
	if !ok {
		return 0, false
	}
	if identity.Manager {
		fail(c, http.StatusBadRequest, errors.ErrCodeAccessDenied, "unauthorized")
		return 0, false
	}
	return identity.ID, true
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "id")
		return 0, false
	}
	return uint(id), true
}

// Discover handles GET /restaurants/list: the swipe page.
func (h *RestaurantHandler) Discover(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurants.Discover(identity.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

type swipeRequest struct {
	RestaurantID uint   `json:"restaurantId"`
	Action       string `json:"action"`
}

// Swipe handles POST /restaurants/swipe.
func (h *RestaurantHandler) Swipe(c *gin.Context) {
	userID, ok := h.userOnly(c)
	if !ok {
		return
	}

	var req swipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.RestaurantID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "restaurantId")
		return
	}
	if req.Action != "like" && req.Action != "dislike" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "action")
		return
	}

	swipe, err := h.restaurants.Swipe(userID, req.RestaurantID, req.Action == "like")
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, swipe)
}

// Liked handles GET /restaurants/like.
func (h *RestaurantHandler) Liked(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurants.Liked(identity.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// ByID handles GET /restaurants/:id.
func (h *RestaurantHandler) ByID(c *gin.Context) {
	if _, ok := h.identity(c); !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	restaurant, err := h.restaurants.ByID(id)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// ByOwner handles GET /restaurants (manager-gated).
func (h *RestaurantHandler) ByOwner(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	restaurants, err := h.restaurants.ByOwner(identity.ID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}

// Create handles POST /restaurants (manager-gated).
func (h *RestaurantHandler) Create(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}

	var input services.RestaurantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if input.Name == "" {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "name")
		return
	}

	restaurant, err := h.restaurants.Create(identity.ID, input)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"restaurantId": restaurant.ID})
}

type restaurantUpdateRequest struct {
	Name           *string  `json:"name"`
	Description    *string  `json:"description"`
	AveragePrice   *float64 `json:"averagePrice"`
	AverageService *float64 `json:"averageService"`
	PhoneNumber    *string  `json:"phoneNumber"`
	Address        *string  `json:"address"`
}

func (r *restaurantUpdateRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Description != nil {
		fields["description"] = *r.Description
	}
	if r.AveragePrice != nil {
		fields["average_price"] = *r.AveragePrice
	}
	if r.AverageService != nil {
		fields["average_service"] = *r.AverageService
	}
	if r.PhoneNumber != nil {
		fields["phone_number"] = *r.PhoneNumber
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	return fields
}

// Update handles PUT /restaurants/:id (manager-gated). Only the supplied
// columns are written; an empty update is rejected before touching the row.
func (h *RestaurantHandler) Update(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req restaurantUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}

	fields := req.fields()
	if len(fields) == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "fields")
		return
	}

	restaurant, err := h.restaurants.Update(id, identity.ID, fields)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurant)
}

// Delete handles DELETE /restaurants/:id (manager-gated). A cross-manager
// delete matches zero rows and reads as 404.
func (h *RestaurantHandler) Delete(c *gin.Context) {
	identity, ok := h.identity(c)
	if !ok {
		return
	}
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.restaurants.Delete(id, identity.ID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

type favoriteRequest struct {
	RestaurantID uint `json:"restaurantId"`
}

// AddFavorite handles POST /restaurants/favorite.
func (h *RestaurantHandler) AddFavorite(c *gin.Context) {
	userID, ok := h.userOnly(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.RestaurantID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentMissing, "restaurantId")
		return
	}

	favorite, err := h.favorites.Add(userID, req.RestaurantID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// RemoveFavorite handles DELETE /restaurants/favorite.
func (h *RestaurantHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := h.userOnly(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "body")
		return
	}
	if req.RestaurantID == 0 {
		fail(c, http.StatusBadRequest, errors.ErrCodeContentInvalid, "restaurantId")
		return
	}

	if err := h.favorites.Remove(userID, req.RestaurantID); err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListFavorites handles GET /restaurants/favorite.
func (h *RestaurantHandler) ListFavorites(c *gin.Context) {
	userID, ok := h.userOnly(c)
	if !ok {
		return
	}

	restaurants, err := h.favorites.List(userID)
	if err != nil {
		failFromError(c, err)
		return
	}

	c.JSON(http.StatusOK, restaurants)
}
