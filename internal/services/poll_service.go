package services

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/internal/security"
	"github.com/dinepoll/server/pkg/errors"
)

type PollService struct {
	polls          *repositories.PollRepository
	accounts       *repositories.AccountRepository
	ownershipLimit int
}

func NewPollService(polls *repositories.PollRepository, accounts *repositories.AccountRepository, ownershipLimit int) *PollService {
	return &PollService{polls: polls, accounts: accounts, ownershipLimit: ownershipLimit}
}

// Create builds the poll, its participants and its candidate restaurant in
// one unit of work. Participant emails are resolved and validated before the
// transaction; the ownership cap is checked inside it.
func (s *PollService) Create(creatorID uint, name string, participantEmails []string, restaurantID uint) (*models.Poll, error) {
	participantIDs := make([]uint, 0, len(participantEmails))
	for _, email := range participantEmails {
		target, _, err := s.accounts.FindByEmail(models.ScopeUser, email)
		if err != nil {
			return nil, err
		}
		if target.ID == creatorID {
			return nil, errors.New(errors.ErrCodeContentInvalid, "participants")
		}
		participantIDs = append(participantIDs, target.ID)
	}

	return s.polls.CreateAtomic(creatorID, security.SanitizeText(name), participantIDs, restaurantID, s.ownershipLimit)
}

// List returns polls the user created or participates in.
func (s *PollService) List(userID uint) ([]models.Poll, error) {
	return s.polls.ListForUser(userID)
}

func (s *PollService) Rename(pollID, creatorID uint, name string) (*models.Poll, error) {
	if err := s.polls.UpdateName(pollID, creatorID, security.SanitizeText(name)); err != nil {
		return nil, err
	}
	return s.polls.FindByID(pollID)
}

func (s *PollService) Delete(pollID, creatorID uint) error {
	return s.polls.Delete(pollID, creatorID)
}

// AddParticipant requires poll ownership by the actor and a valid existing
// target account, in that order.
func (s *PollService) AddParticipant(actorID, pollID uint, email string) (*models.PollParticipant, error) {
	poll, err := s.polls.FindByID(pollID)
	if err != nil {
		return nil, err
	}
	if poll.CreatorID != actorID {
		return nil, errors.New(errors.ErrCodeAccessDenied, "poll")
	}

	target, _, err := s.accounts.FindByEmail(models.ScopeUser, email)
	if err != nil {
		return nil, err
	}
	if target.ID == actorID {
		return nil, errors.New(errors.ErrCodeContentInvalid, "email")
	}

	return s.polls.AddParticipant(pollID, target.ID)
}

// RemoveParticipant requires ownership; removing oneself through this path
// is rejected.
func (s *PollService) RemoveParticipant(actorID, pollID, userID uint) error {
	poll, err := s.polls.FindByID(pollID)
	if err != nil {
		return err
	}
	if poll.CreatorID != actorID {
		return errors.New(errors.ErrCodeAccessDenied, "poll")
	}
	if userID == actorID {
		return errors.New(errors.ErrCodeContentInvalid, "userId")
	}

	return s.polls.RemoveParticipant(pollID, userID)
}

// Vote upserts the voter's choice. Only the creator or a participant may
// vote, and the option must belong to the poll.
func (s *PollService) Vote(voterID, pollID, optionID uint, vote bool) (*models.PollVote, error) {
	poll, err := s.polls.FindByID(pollID)
	if err != nil {
		return nil, err
	}

	option, err := s.polls.FindOption(optionID)
	if err != nil {
		return nil, err
	}
	if option.PollID != pollID {
		return nil, errors.New(errors.ErrCodeContentInvalid, "optionId")
	}

	if poll.CreatorID != voterID {
		isParticipant, err := s.polls.HasParticipant(pollID, voterID)
		if err != nil {
			return nil, err
		}
		if !isParticipant {
			return nil, errors.New(errors.ErrCodeAccessDenied, "poll")
		}
	}

	return s.polls.UpsertVote(pollID, voterID, optionID, vote)
}
