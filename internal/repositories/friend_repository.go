package repositories

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
)

type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// FindLink returns the link with requester/addressee in the exact direction
// given, or a not_found error.
func (r *FriendRepository) FindLink(requesterID, addresseeID uint) (*models.FriendLink, error) {
	var link models.FriendLink
	result := r.db.Where("requester_id = ? AND addressee_id = ?", requesterID, addresseeID).First(&link)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "friend request")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "friend request")
	}

	return &link, nil
}

// FindLinkByID returns a link by primary key.
func (r *FriendRepository) FindLinkByID(id uint) (*models.FriendLink, error) {
	var link models.FriendLink
	result := r.db.First(&link, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "friend request")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "friend request")
	}

	return &link, nil
}

// CreateLink inserts a new pending link with the actor as requester.
func (r *FriendRepository) CreateLink(requesterID, addresseeID uint) (*models.FriendLink, error) {
	link := &models.FriendLink{
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendStatusPending,
	}

	if err := r.db.Create(link).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "friend request")
	}

	return link, nil
}

// SetStatus updates a pending link to the given status. The pending predicate
// keeps an already-processed link from being flipped again.
func (r *FriendRepository) SetStatus(id uint, status string) error {
	result := r.db.Model(&models.FriendLink{}).
		Where("id = ? AND status = ?", id, models.FriendStatusPending).
		Update("status", status)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "friend request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "friend request")
	}

	return nil
}

// DeleteLink removes a link by id.
func (r *FriendRepository) DeleteLink(id uint) error {
	result := r.db.Delete(&models.FriendLink{}, id)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "friend request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "friend request")
	}

	return nil
}

// GetFriends retrieves accepted counterparts, matching the user on either
// side of the link.
func (r *FriendRepository) GetFriends(userID uint) ([]models.User, error) {
	var friends []models.User

	err := r.db.Table("users").
		Select("users.id, users.email, users.name").
		Joins("JOIN friend_links ON (friend_links.requester_id = users.id OR friend_links.addressee_id = users.id)").
		Where("(friend_links.requester_id = ? OR friend_links.addressee_id = ?) AND friend_links.status = ? AND users.id != ?",
			userID, userID, models.FriendStatusAccept, userID).
		Find(&friends).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "friends")
	}

	return friends, nil
}

// GetPendingRequests retrieves inbound pending links with the requester row.
func (r *FriendRepository) GetPendingRequests(userID uint) ([]models.FriendLink, error) {
	var requests []models.FriendLink

	err := r.db.Where("addressee_id = ? AND status = ?", userID, models.FriendStatusPending).
		Preload("Requester").
		Find(&requests).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "friend requests")
	}

	return requests, nil
}

// CountFriends counts accepted links on either side.
func (r *FriendRepository) CountFriends(userID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.FriendLink{}).
		Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
			userID, userID, models.FriendStatusAccept).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeServerError, "friends")
	}

	return count, nil
}
