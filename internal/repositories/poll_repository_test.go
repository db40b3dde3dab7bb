package repositories

import (
	"testing"

	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/testutil"
	"github.com/dinepoll/server/pkg/errors"
)

func TestPollRepository_CreateAtomic(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	friend := testutil.SeedUser(t, db, "friend@example.com")
	owner := testutil.SeedManager(t, db, "owner@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Option")

	poll, err := repo.CreateAtomic(creator.ID, "Dinner", []uint{friend.ID}, restaurant.ID, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	if poll.Name != "Dinner" || poll.CreatorID != creator.ID {
		t.Errorf("poll = %+v", poll)
	}
	if len(poll.Participants) != 1 || poll.Participants[0].UserID != friend.ID {
		t.Errorf("participants = %+v, want one row for user %d", poll.Participants, friend.ID)
	}
	if len(poll.Options) != 1 || poll.Options[0].RestaurantID != restaurant.ID {
		t.Errorf("options = %+v, want one row for restaurant %d", poll.Options, restaurant.ID)
	}
}

func TestPollRepository_CreateAtomic_OwnershipCap(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")

	for i := 0; i < 5; i++ {
		if _, err := repo.CreateAtomic(creator.ID, "Poll", nil, 0, 5); err != nil {
			t.Fatalf("CreateAtomic() #%d error = %v", i+1, err)
		}
	}

	if _, err := repo.CreateAtomic(creator.ID, "Overflow", nil, 0, 5); errors.Code(err) != errors.ErrCodeContentLimit {
		t.Fatalf("CreateAtomic() over cap code = %q, want %q", errors.Code(err), errors.ErrCodeContentLimit)
	}

	// deleting one frees a slot
	var victim models.Poll
	if err := db.Where("creator_id = ?", creator.ID).First(&victim).Error; err != nil {
		t.Fatalf("failed to pick a poll: %v", err)
	}
	if err := repo.Delete(victim.ID, creator.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.CreateAtomic(creator.ID, "Retry", nil, 0, 5); err != nil {
		t.Errorf("CreateAtomic() after delete error = %v", err)
	}
}

func TestPollRepository_CreateAtomic_RollsBack(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	friend := testutil.SeedUser(t, db, "friend@example.com")

	// duplicate participant violates the unique pair index mid-transaction
	_, err := repo.CreateAtomic(creator.ID, "Broken", []uint{friend.ID, friend.ID}, 0, 5)
	if errors.Code(err) != errors.ErrCodeContentDuplicate {
		t.Fatalf("CreateAtomic() code = %q, want %q", errors.Code(err), errors.ErrCodeContentDuplicate)
	}

	var count int64
	if err := db.Model(&models.Poll{}).Count(&count).Error; err != nil {
		t.Fatalf("count polls: %v", err)
	}
	if count != 0 {
		t.Errorf("poll rows after failed create = %d, want 0", count)
	}
}

func TestPollRepository_UpdateAndDelete_CreatorScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	stranger := testutil.SeedUser(t, db, "stranger@example.com")

	poll, err := repo.CreateAtomic(creator.ID, "Original", nil, 0, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}

	if err := repo.UpdateName(poll.ID, stranger.ID, "Hijacked"); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("cross-creator UpdateName() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
	if err := repo.UpdateName(poll.ID, creator.ID, "Renamed"); err != nil {
		t.Fatalf("UpdateName() error = %v", err)
	}

	renamed, err := repo.FindByID(poll.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if renamed.Name != "Renamed" {
		t.Errorf("name = %q, want %q", renamed.Name, "Renamed")
	}

	if err := repo.Delete(poll.ID, stranger.ID); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("cross-creator Delete() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
	if err := repo.Delete(poll.ID, creator.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
}

func TestPollRepository_Participants(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	friend := testutil.SeedUser(t, db, "friend@example.com")

	poll, err := repo.CreateAtomic(creator.ID, "Lunch", nil, 0, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}

	if _, err := repo.AddParticipant(poll.ID, friend.ID); err != nil {
		t.Fatalf("AddParticipant() error = %v", err)
	}
	if _, err := repo.AddParticipant(poll.ID, friend.ID); errors.Code(err) != errors.ErrCodeContentDuplicate {
		t.Errorf("duplicate AddParticipant() code = %q, want %q", errors.Code(err), errors.ErrCodeContentDuplicate)
	}

	has, err := repo.HasParticipant(poll.ID, friend.ID)
	if err != nil {
		t.Fatalf("HasParticipant() error = %v", err)
	}
	if !has {
		t.Error("HasParticipant() = false after add")
	}

	if err := repo.RemoveParticipant(poll.ID, friend.ID); err != nil {
		t.Fatalf("RemoveParticipant() error = %v", err)
	}
	if err := repo.RemoveParticipant(poll.ID, friend.ID); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("RemoveParticipant() on missing row code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
}

func TestPollRepository_ListForUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	friend := testutil.SeedUser(t, db, "friend@example.com")
	stranger := testutil.SeedUser(t, db, "stranger@example.com")

	created, err := repo.CreateAtomic(creator.ID, "Mine", nil, 0, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	invited, err := repo.CreateAtomic(friend.ID, "Theirs", []uint{creator.ID}, 0, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	if _, err := repo.CreateAtomic(stranger.ID, "Unrelated", nil, 0, 5); err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}

	polls, err := repo.ListForUser(creator.ID)
	if err != nil {
		t.Fatalf("ListForUser() error = %v", err)
	}
	if len(polls) != 2 {
		t.Fatalf("ListForUser() returned %d polls, want 2", len(polls))
	}

	got := map[uint]bool{}
	for _, p := range polls {
		got[p.ID] = true
	}
	if !got[created.ID] || !got[invited.ID] {
		t.Errorf("ListForUser() ids = %v, want %d and %d", got, created.ID, invited.ID)
	}
}

func TestPollRepository_UpsertVote(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPollRepository(db)

	creator := testutil.SeedUser(t, db, "creator@example.com")
	owner := testutil.SeedManager(t, db, "owner@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Choice")

	poll, err := repo.CreateAtomic(creator.ID, "Vote", nil, restaurant.ID, 5)
	if err != nil {
		t.Fatalf("CreateAtomic() error = %v", err)
	}
	option := poll.Options[0]

	if _, err := repo.UpsertVote(poll.ID, creator.ID, option.ID, true); err != nil {
		t.Fatalf("UpsertVote() error = %v", err)
	}
	// last write wins, no second row
	if _, err := repo.UpsertVote(poll.ID, creator.ID, option.ID, false); err != nil {
		t.Fatalf("repeat UpsertVote() error = %v", err)
	}

	var votes []models.PollVote
	if err := db.Where("poll_id = ?", poll.ID).Find(&votes).Error; err != nil {
		t.Fatalf("load votes: %v", err)
	}
	if len(votes) != 1 {
		t.Fatalf("vote rows = %d, want 1", len(votes))
	}
	if votes[0].Vote {
		t.Error("vote value = true, want false after overwrite")
	}
}
