package services

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/pkg/errors"
)

type FavoriteService struct {
	favorites *repositories.FavoriteRepository
}

func NewFavoriteService(favorites *repositories.FavoriteRepository) *FavoriteService {
	return &FavoriteService{favorites: favorites}
}

// Add bookmarks a restaurant. The pre-check supplies the duplicate error;
// the unique index backs it up under concurrent requests.
func (s *FavoriteService) Add(userID, restaurantID uint) (*models.Favorite, error) {
	exists, err := s.favorites.Exists(userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.New(errors.ErrCodeContentDuplicate, "restaurantId")
	}

	return s.favorites.Create(userID, restaurantID)
}

func (s *FavoriteService) Remove(userID, restaurantID uint) error {
	return s.favorites.Delete(userID, restaurantID)
}

func (s *FavoriteService) List(userID uint) ([]models.Restaurant, error) {
	return s.favorites.List(userID)
}
