package repositories

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PollRepository struct {
	db *gorm.DB
}

func NewPollRepository(db *gorm.DB) *PollRepository {
	return &PollRepository{db: db}
}

// CreateAtomic inserts the poll, its participants and its option restaurant
// in one transaction, with the ownership cap checked inside it. A failure
// partway through rolls everything back, so no orphaned poll survives.
func (r *PollRepository) CreateAtomic(creatorID uint, name string, participantIDs []uint, restaurantID uint, limit int) (*models.Poll, error) {
	poll := &models.Poll{Name: name, CreatorID: creatorID}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Poll{}).Where("creator_id = ?", creatorID).Count(&count).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeServerError, "polls")
		}
		if count >= int64(limit) {
			return errors.New(errors.ErrCodeContentLimit, "polls")
		}

		if err := tx.Create(poll).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeServerError, "poll")
		}

		for _, userID := range participantIDs {
			participant := &models.PollParticipant{PollID: poll.ID, UserID: userID}
			if err := tx.Create(participant).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeContentDuplicate, "participant")
			}
		}

		if restaurantID != 0 {
			option := &models.PollOption{PollID: poll.ID, RestaurantID: restaurantID}
			if err := tx.Create(option).Error; err != nil {
				return errors.Wrap(err, errors.ErrCodeServerError, "option")
			}
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return r.FindByID(poll.ID)
}

func (r *PollRepository) FindByID(id uint) (*models.Poll, error) {
	var poll models.Poll
	result := r.db.Preload("Participants").Preload("Options").Preload("Votes").First(&poll, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "poll")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "poll")
	}

	return &poll, nil
}

// ListForUser returns polls the user created or participates in.
func (r *PollRepository) ListForUser(userID uint) ([]models.Poll, error) {
	var polls []models.Poll

	err := r.db.Preload("Participants").Preload("Options").Preload("Votes").
		Where("creator_id = ? OR id IN (?)", userID,
			r.db.Model(&models.PollParticipant{}).Select("poll_id").Where("user_id = ?", userID)).
		Order("id DESC").
		Find(&polls).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "polls")
	}

	return polls, nil
}

// UpdateName renames a poll, scoped to id AND creator_id.
func (r *PollRepository) UpdateName(id, creatorID uint, name string) error {
	result := r.db.Model(&models.Poll{}).
		Where("id = ? AND creator_id = ?", id, creatorID).
		Update("name", name)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "poll")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "poll")
	}

	return nil
}

func (r *PollRepository) Delete(id, creatorID uint) error {
	result := r.db.Where("id = ? AND creator_id = ?", id, creatorID).Delete(&models.Poll{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "poll")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "poll")
	}

	return nil
}

func (r *PollRepository) CountByCreator(creatorID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Poll{}).Where("creator_id = ?", creatorID).Count(&count)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodeServerError, "polls")
	}
	return count, nil
}

func (r *PollRepository) AddParticipant(pollID, userID uint) (*models.PollParticipant, error) {
	participant := &models.PollParticipant{PollID: pollID, UserID: userID}
	if err := r.db.Create(participant).Error; err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeContentDuplicate, "participant")
	}
	return participant, nil
}

func (r *PollRepository) RemoveParticipant(pollID, userID uint) error {
	result := r.db.Where("poll_id = ? AND user_id = ?", pollID, userID).
		Delete(&models.PollParticipant{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeServerError, "participant")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "participant")
	}

	return nil
}

func (r *PollRepository) HasParticipant(pollID, userID uint) (bool, error) {
	var count int64
	result := r.db.Model(&models.PollParticipant{}).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		Count(&count)

	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeServerError, "participant")
	}

	return count > 0, nil
}

// FindOption returns an option row by id.
func (r *PollRepository) FindOption(optionID uint) (*models.PollOption, error) {
	var option models.PollOption
	result := r.db.First(&option, optionID)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "option")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeServerError, "option")
	}

	return &option, nil
}

// UpsertVote records a vote, overwriting any earlier vote by the same user on
// the same option. Last write wins; exactly one countable row remains.
func (r *PollRepository) UpsertVote(pollID, userID, optionID uint, vote bool) (*models.PollVote, error) {
	row := &models.PollVote{PollID: pollID, UserID: userID, OptionID: optionID, Vote: vote}

	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "poll_id"}, {Name: "user_id"}, {Name: "option_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"vote": vote}),
	}).Create(row).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServerError, "vote")
	}

	return row, nil
}
