package services

import (
	"testing"

	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/repositories"
	"github.com/dinepoll/server/internal/testutil"
	"github.com/dinepoll/server/pkg/errors"
	"gorm.io/gorm"
)

func newPollService(t *testing.T, limit int) (*PollService, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return NewPollService(repositories.NewPollRepository(db), repositories.NewAccountRepository(db), limit), db
}

func TestPollService_Create(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	testutil.SeedUser(t, db, "friend@example.com")
	owner := testutil.SeedManager(t, db, "owner@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Candidate")

	poll, err := svc.Create(creator.ID, "Dinner", []string{"friend@example.com"}, restaurant.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(poll.Participants) != 1 {
		t.Errorf("participants = %d, want 1", len(poll.Participants))
	}
	if len(poll.Options) != 1 {
		t.Errorf("options = %d, want 1", len(poll.Options))
	}
}

func TestPollService_Create_CreatorAsParticipant(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")

	if _, err := svc.Create(creator.ID, "Dinner", []string{"creator@example.com"}, 0); errors.Code(err) != errors.ErrCodeContentInvalid {
		t.Errorf("Create() code = %q, want %q", errors.Code(err), errors.ErrCodeContentInvalid)
	}
}

func TestPollService_Create_UnknownParticipant(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")

	_, err := svc.Create(creator.ID, "Dinner", []string{"ghost@example.com"}, 0)
	if errors.Code(err) != errors.ErrCodeNotFound {
		t.Fatalf("Create() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}

	// nothing written for the failed attempt
	var count int64
	if err := db.Model(&models.Poll{}).Count(&count).Error; err != nil {
		t.Fatalf("count polls: %v", err)
	}
	if count != 0 {
		t.Errorf("poll rows = %d, want 0", count)
	}
}

func TestPollService_Create_OwnershipCap(t *testing.T) {
	svc, db := newPollService(t, 2)

	creator := testutil.SeedUser(t, db, "creator@example.com")

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(creator.ID, "Poll", nil, 0); err != nil {
			t.Fatalf("Create() #%d error = %v", i+1, err)
		}
	}
	if _, err := svc.Create(creator.ID, "Overflow", nil, 0); errors.Code(err) != errors.ErrCodeContentLimit {
		t.Errorf("Create() over cap code = %q, want %q", errors.Code(err), errors.ErrCodeContentLimit)
	}
}

func TestPollService_Participants(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	friend := testutil.SeedUser(t, db, "friend@example.com")
	stranger := testutil.SeedUser(t, db, "stranger@example.com")

	poll, err := svc.Create(creator.ID, "Lunch", nil, 0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// only the creator manages the roster
	if _, err := svc.AddParticipant(stranger.ID, poll.ID, "friend@example.com"); errors.Code(err) != errors.ErrCodeAccessDenied {
		t.Errorf("stranger AddParticipant() code = %q, want %q", errors.Code(err), errors.ErrCodeAccessDenied)
	}
	// the creator cannot invite themselves
	if _, err := svc.AddParticipant(creator.ID, poll.ID, "creator@example.com"); errors.Code(err) != errors.ErrCodeContentInvalid {
		t.Errorf("self AddParticipant() code = %q, want %q", errors.Code(err), errors.ErrCodeContentInvalid)
	}

	if _, err := svc.AddParticipant(creator.ID, poll.ID, "friend@example.com"); err != nil {
		t.Fatalf("AddParticipant() error = %v", err)
	}

	if err := svc.RemoveParticipant(stranger.ID, poll.ID, friend.ID); errors.Code(err) != errors.ErrCodeAccessDenied {
		t.Errorf("stranger RemoveParticipant() code = %q, want %q", errors.Code(err), errors.ErrCodeAccessDenied)
	}
	if err := svc.RemoveParticipant(creator.ID, poll.ID, creator.ID); errors.Code(err) != errors.ErrCodeContentInvalid {
		t.Errorf("self RemoveParticipant() code = %q, want %q", errors.Code(err), errors.ErrCodeContentInvalid)
	}
	if err := svc.RemoveParticipant(creator.ID, poll.ID, friend.ID); err != nil {
		t.Fatalf("RemoveParticipant() error = %v", err)
	}
}

func TestPollService_Vote(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	testutil.SeedUser(t, db, "friend@example.com")
	stranger := testutil.SeedUser(t, db, "stranger@example.com")
	owner := testutil.SeedManager(t, db, "owner@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Choice")

	poll, err := svc.Create(creator.ID, "Vote", []string{"friend@example.com"}, restaurant.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	option := poll.Options[0]
	participantID := poll.Participants[0].UserID

	// creator and participant may vote, a stranger may not
	if _, err := svc.Vote(creator.ID, poll.ID, option.ID, true); err != nil {
		t.Fatalf("creator Vote() error = %v", err)
	}
	if _, err := svc.Vote(participantID, poll.ID, option.ID, false); err != nil {
		t.Fatalf("participant Vote() error = %v", err)
	}
	if _, err := svc.Vote(stranger.ID, poll.ID, option.ID, true); errors.Code(err) != errors.ErrCodeAccessDenied {
		t.Errorf("stranger Vote() code = %q, want %q", errors.Code(err), errors.ErrCodeAccessDenied)
	}

	// revote overwrites in place
	if _, err := svc.Vote(creator.ID, poll.ID, option.ID, false); err != nil {
		t.Fatalf("revote error = %v", err)
	}
	var votes []models.PollVote
	if err := db.Where("poll_id = ? AND user_id = ?", poll.ID, creator.ID).Find(&votes).Error; err != nil {
		t.Fatalf("load votes: %v", err)
	}
	if len(votes) != 1 || votes[0].Vote {
		t.Errorf("creator votes = %+v, want single false row", votes)
	}
}

func TestPollService_Vote_OptionMustBelongToPoll(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	owner := testutil.SeedManager(t, db, "owner@example.com")
	first := testutil.SeedRestaurant(t, db, owner.ID, "First")
	second := testutil.SeedRestaurant(t, db, owner.ID, "Second")

	pollA, err := svc.Create(creator.ID, "A", nil, first.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	pollB, err := svc.Create(creator.ID, "B", nil, second.ID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// option from poll B used against poll A
	if _, err := svc.Vote(creator.ID, pollA.ID, pollB.Options[0].ID, true); errors.Code(err) != errors.ErrCodeContentInvalid {
		t.Errorf("cross-poll Vote() code = %q, want %q", errors.Code(err), errors.ErrCodeContentInvalid)
	}
}

func TestPollService_RenameAndDelete(t *testing.T) {
	svc, db := newPollService(t, 5)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	stranger := testutil.SeedUser(t, db, "stranger@example.com")

	poll, err := svc.Create(creator.ID, "Original", nil, 0)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.Rename(poll.ID, stranger.ID, "Hijacked"); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("stranger Rename() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}

	renamed, err := svc.Rename(poll.ID, creator.ID, "Renamed")
	if err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if renamed.Name != "Renamed" {
		t.Errorf("name = %q, want %q", renamed.Name, "Renamed")
	}

	if err := svc.Delete(poll.ID, stranger.ID); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("stranger Delete() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
	if err := svc.Delete(poll.ID, creator.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}
