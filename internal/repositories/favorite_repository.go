package repositories

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Exists(userID, restaurantID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.Favorite{}).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeServerError, "favorite")
	}

	return count > 0, nil
}

// Create inserts the bookmark. The unique pair index turns a concurrent
// double insert into a constraint error rather than a duplicate row.
func (r *FavoriteRepository) Create(userID, restaurantID uint) (*models.Favorite, error) {
	favorite := &models.Favorite{UserID: userID, RestaurantID: restaurantID}
	if err := r.db.Create(favorite).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentDuplicate, "restaurantId")
	}
	return favorite, nil
}

// Delete distinguishes "no such favorite" (zero rows) from a backend failure.
func (r *FavoriteRepository) Delete(userID, restaurantID uint) error {
	result := r.db.Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Favorite{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "favorite")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "restaurantId")
	}

	return nil
}

// List returns the user's bookmarked restaurants with photos.
func (r *FavoriteRepository) List(userID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant

	err := r.db.Preload("Photos").
		Joins("JOIN favorites ON favorites.restaurant_id = restaurants.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Find(&restaurants).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "favorites")
	}

	return restaurants, nil
}
