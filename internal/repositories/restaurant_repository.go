package repositories

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{db: db}
}

func (r *RestaurantRepository) Create(restaurant *models.Restaurant) error {
	if err := r.db.Create(restaurant).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeServerError, "restaurant")
	}
	return nil
}

func (r *RestaurantRepository) FindByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	result := r.db.Preload("Photos").First(&restaurant, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "restaurant")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "restaurant")
	}

	return &restaurant, nil
}

func (r *RestaurantRepository) FindByOwner(ownerID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := r.db.Preload("Photos").Where("owner_id = ?", ownerID).Find(&restaurants).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "restaurants")
	}
	return restaurants, nil
}

// ListUnswiped returns up to limit restaurants the user has not yet swiped,
// newest first. "Already seen" lives entirely in this exclusion join.
func (r *RestaurantRepository) ListUnswiped(userID uint, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant

	err := r.db.Preload("Photos").
		Where("id NOT IN (?)", r.db.Model(&models.Swipe{}).Select("restaurant_id").Where("user_id = ?", userID)).
		Order("id DESC").
		Limit(limit).
		Find(&restaurants).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "restaurants")
	}

	return restaurants, nil
}

// Update applies a partial field set scoped to id AND owner_id, so a
// cross-manager write affects zero rows instead of leaking existence.
func (r *RestaurantRepository) Update(id, ownerID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return errors.New(errors.ErrCodeContentMissing, "fields")
	}

	result := r.db.Model(&models.Restaurant{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "restaurant")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "restaurant")
	}

	return nil
}

func (r *RestaurantRepository) Delete(id, ownerID uint) error {
	result := r.db.Where("id = ? AND owner_id = ?", id, ownerID).Delete(&models.Restaurant{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "restaurant")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "restaurant")
	}

	return nil
}

func (r *RestaurantRepository) AddPhoto(restaurantID uint, url string) (*models.Photo, error) {
	photo := &models.Photo{RestaurantID: restaurantID, URL: url}
	if err := r.db.Create(photo).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "photo")
	}
	return photo, nil
}

// CreateSwipe appends one swipe event. No prior-swipe check by design.
func (r *RestaurantRepository) CreateSwipe(swipe *models.Swipe) error {
	if err := r.db.Create(swipe).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeServerError, "swipe")
	}
	return nil
}

// ListLiked returns restaurants the user liked, most recent swipe first.
// Repeat swipes on the same restaurant collapse to one row.
func (r *RestaurantRepository) ListLiked(userID uint) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant

	err := r.db.Preload("Photos").
		Joins("JOIN swipes ON swipes.restaurant_id = restaurants.id").
		Where("swipes.user_id = ? AND swipes.liked = ?", userID, true).
		Group("restaurants.id").
		Order("MAX(swipes.created_at) DESC").
		Find(&restaurants).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "restaurants")
	}

	return restaurants, nil
}

// CountLiked counts distinct liked restaurants for the account projection.
func (r *RestaurantRepository) CountLiked(userID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Swipe{}).
		Distinct("restaurant_id").
		Where("user_id = ? AND liked = ?", userID, true).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeServerError, "swipes")
	}

	return count, nil
}
