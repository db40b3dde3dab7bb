package services

import (
	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/pkg/errors"
)

type FriendService struct {
	accounts *repositories.AccountRepository
	friends  *repositories.FriendRepository
}

func NewFriendService(accounts *repositories.AccountRepository, friends *repositories.FriendRepository) *FriendService {
	return &FriendService{accounts: accounts, friends: friends}
}

// FriendView is the id+email projection of a friend or requester.
type FriendView struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// RequestView is one inbound pending request.
type RequestView struct {
	RequestID uint       `json:"requestId"`
	Requester FriendView `json:"requester"`
}

// Request asks the target (by email) for friendship. A mutual pending is
// resolved by flipping the reverse link to accept instead of inserting a
// second edge for the same pair.
func (s *FriendService) Request(actorID uint, targetEmail string) (*models.FriendLink, error) {
	target, _, err := s.accounts.FindByEmail(models.ScopeUser, targetEmail)
	if err != nil {
		return nil, err
	}

	if target.ID == actorID {
		return nil, errors.New(errors.ErrCodeContentInvalid, "email")
	}

	if _, err := s.friends.FindLink(actorID, target.ID); err == nil {
		return nil, errors.New(errors.ErrCodeContentDuplicate, "email")
	} else if errors.Code(err) != errors.ErrCodeNotFound {
		return nil, err
	}

	reverse, err := s.friends.FindLink(target.ID, actorID)
	if err == nil {
		if reverse.Status == models.FriendStatusAccept {
			return nil, errors.New(errors.ErrCodeContentDuplicate, "email")
		}
		if err := s.friends.SetStatus(reverse.ID, models.FriendStatusAccept); err != nil {
			return nil, err
		}
		reverse.Status = models.FriendStatusAccept
		return reverse, nil
	}
	if errors.Code(err) != errors.ErrCodeNotFound {
		return nil, err
	}

	return s.friends.CreateLink(actorID, target.ID)
}

// Update applies a status transition. The only legal transition is
// pending → accept, and only the addressee of the link may apply it; anyone
// else gets a not-found so link existence does not leak.
func (s *FriendService) Update(actorID, requestID uint, status string) (*models.FriendLink, error) {
	if status != models.FriendStatusAccept {
		return nil, errors.New(errors.ErrCodeContentInvalid, "status")
	}

	link, err := s.friends.FindLinkByID(requestID)
	if err != nil {
		return nil, err
	}

	if link.AddresseeID != actorID {
		return nil, errors.New(errors.ErrCodeNotFound, "friend request")
	}

	if err := s.friends.SetStatus(link.ID, status); err != nil {
		return nil, err
	}

	link.Status = status
	return link, nil
}

// Delete removes a link. The caller must be a party to it.
func (s *FriendService) Delete(actorID, requestID uint) error {
	link, err := s.friends.FindLinkByID(requestID)
	if err != nil {
		return err
	}

	if !link.IsParty(actorID) {
		return errors.New(errors.ErrCodeNotFound, "friend request")
	}

	return s.friends.DeleteLink(link.ID)
}

// Friends returns accepted counterparts projected to id+email.
func (s *FriendService) Friends(userID uint) ([]FriendView, error) {
	users, err := s.friends.GetFriends(userID)
	if err != nil {
		return nil, err
	}

	views := make([]FriendView, 0, len(users))
	for _, u := range users {
		views = append(views, FriendView{ID: u.ID, Email: u.Email, Name: u.Name})
	}
	return views, nil
}

// Requests returns inbound pending requests with requester projections.
func (s *FriendService) Requests(userID uint) ([]RequestView, error) {
	links, err := s.friends.GetPendingRequests(userID)
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(links))
	for _, l := range links {
		views = append(views, RequestView{
			RequestID: l.ID,
			Requester: FriendView{ID: l.Requester.ID, Email: l.Requester.Email, Name: l.Requester.Name},
		})
	}
	return views, nil
}
