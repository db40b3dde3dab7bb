package services

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/internal/security"
)

type RestaurantService struct {
	restaurants *repositories.RestaurantRepository
	pageSize    int
}

func NewRestaurantService(restaurants *repositories.RestaurantRepository, pageSize int) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, pageSize: pageSize}
}

// RestaurantInput is the field set a manager may supply on create or update.
type RestaurantInput struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	AveragePrice   float64 `json:"averagePrice"`
	AverageService float64 `json:"averageService"`
	PhoneNumber    string  `json:"phoneNumber"`
	Address        string  `json:"address"`
	ThumbnailURL   string  `json:"thumbnailUrl"`
}

// Discover returns the swipe page: unswiped restaurants, newest first.
func (s *RestaurantService) Discover(userID uint) ([]models.Restaurant, error) {
	return s.restaurants.ListUnswiped(userID, s.pageSize)
}

// Swipe appends one like/dislike event. No prior-swipe check; discovery
// filters already-seen restaurants on read.
func (s *RestaurantService) Swipe(userID, restaurantID uint, liked bool) (*models.Swipe, error) {
	swipe := &models.Swipe{RestaurantID: restaurantID, UserID: userID, Liked: liked}
	if err := s.restaurants.CreateSwipe(swipe); err != nil {
		return nil, err
	}
	return swipe, nil
}

func (s *RestaurantService) Liked(userID uint) ([]models.Restaurant, error) {
	return s.restaurants.ListLiked(userID)
}

func (s *RestaurantService) ByID(id uint) (*models.Restaurant, error) {
	return s.restaurants.FindByID(id)
}

func (s *RestaurantService) ByOwner(ownerID uint) ([]models.Restaurant, error) {
	return s.restaurants.FindByOwner(ownerID)
}

// Create inserts a restaurant owned by the caller; an optional thumbnail URL
// becomes the first photo row. The image itself lives in an external store.
func (s *RestaurantService) Create(ownerID uint, input RestaurantInput) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		OwnerID:        ownerID,
		Name:           security.SanitizeText(input.Name),
		Description:    security.SanitizeText(input.Description),
		AveragePrice:   input.AveragePrice,
		AverageService: input.AverageService,
		PhoneNumber:    security.SanitizeText(input.PhoneNumber),
		Address:        security.SanitizeText(input.Address),
	}

	if err := s.restaurants.Create(restaurant); err != nil {
		return nil, err
	}

	if input.ThumbnailURL != "" {
		photo, err := s.restaurants.AddPhoto(restaurant.ID, input.ThumbnailURL)
		if err != nil {
			return nil, err
		}
		restaurant.Photos = append(restaurant.Photos, *photo)
	}

	return restaurant, nil
}

// Update applies only the supplied columns, scoped to id AND owner. The
// repository rejects an empty field set before issuing the statement.
func (s *RestaurantService) Update(id, ownerID uint, fields map[string]interface{}) (*models.Restaurant, error) {
	for _, key := range []string{"name", "description", "phone_number", "address"} {
		if v, ok := fields[key].(string); ok {
			fields[key] = security.SanitizeText(v)
		}
	}

	if err := s.restaurants.Update(id, ownerID, fields); err != nil {
		return nil, err
	}

	return s.restaurants.FindByID(id)
}

func (s *RestaurantService) Delete(id, ownerID uint) error {
	return s.restaurants.Delete(id, ownerID)
}
