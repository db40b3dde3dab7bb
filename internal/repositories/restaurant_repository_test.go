package repositories

import (
	"testing"

	"github.com/dinepoll/server/internal/models"
	"github.com/dinepoll/server/internal/testutil"
	"github.com/dinepoll/server/pkg/errors"
)

func TestRestaurantRepository_ListUnswiped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	user := testutil.SeedUser(t, db, "diner@example.com")

	first := testutil.SeedRestaurant(t, db, owner.ID, "First")
	second := testutil.SeedRestaurant(t, db, owner.ID, "Second")
	third := testutil.SeedRestaurant(t, db, owner.ID, "Third")

	err := repo.CreateSwipe(&models.Swipe{RestaurantID: second.ID, UserID: user.ID, Liked: false})
	if err != nil {
		t.Fatalf("CreateSwipe() error = %v", err)
	}

	restaurants, err := repo.ListUnswiped(user.ID, 20)
	if err != nil {
		t.Fatalf("ListUnswiped() error = %v", err)
	}
	if len(restaurants) != 2 {
		t.Fatalf("ListUnswiped() returned %d restaurants, want 2", len(restaurants))
	}
	// newest first, swiped restaurant excluded
	if restaurants[0].ID != third.ID || restaurants[1].ID != first.ID {
		t.Errorf("ListUnswiped() order = [%d %d], want [%d %d]",
			restaurants[0].ID, restaurants[1].ID, third.ID, first.ID)
	}

	// another user's feed is unaffected
	other := testutil.SeedUser(t, db, "other@example.com")
	restaurants, err = repo.ListUnswiped(other.ID, 20)
	if err != nil {
		t.Fatalf("ListUnswiped() error = %v", err)
	}
	if len(restaurants) != 3 {
		t.Errorf("ListUnswiped() for other user returned %d restaurants, want 3", len(restaurants))
	}
}

func TestRestaurantRepository_ListUnswiped_Limit(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	user := testutil.SeedUser(t, db, "diner@example.com")

	for i := 0; i < 5; i++ {
		testutil.SeedRestaurant(t, db, owner.ID, "Place")
	}

	restaurants, err := repo.ListUnswiped(user.ID, 3)
	if err != nil {
		t.Fatalf("ListUnswiped() error = %v", err)
	}
	if len(restaurants) != 3 {
		t.Errorf("ListUnswiped() returned %d restaurants, want 3", len(restaurants))
	}
}

func TestRestaurantRepository_Update_OwnerScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	intruder := testutil.SeedManager(t, db, "intruder@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Old Name")

	err := repo.Update(restaurant.ID, owner.ID, map[string]interface{}{"name": "New Name"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	updated, err := repo.FindByID(restaurant.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if updated.Name != "New Name" {
		t.Errorf("name after update = %q, want %q", updated.Name, "New Name")
	}

	// a different owner hits zero rows, not the restaurant
	err = repo.Update(restaurant.ID, intruder.ID, map[string]interface{}{"name": "Stolen"})
	if errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("cross-owner Update() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}

	if err := repo.Update(restaurant.ID, owner.ID, map[string]interface{}{}); errors.Code(err) != errors.ErrCodeContentMissing {
		t.Errorf("empty Update() code = %q, want %q", errors.Code(err), errors.ErrCodeContentMissing)
	}
}

func TestRestaurantRepository_Delete_OwnerScoped(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	intruder := testutil.SeedManager(t, db, "intruder@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Doomed")

	if err := repo.Delete(restaurant.ID, intruder.ID); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("cross-owner Delete() code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}

	if err := repo.Delete(restaurant.ID, owner.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.FindByID(restaurant.ID); errors.Code(err) != errors.ErrCodeNotFound {
		t.Errorf("FindByID() after delete code = %q, want %q", errors.Code(err), errors.ErrCodeNotFound)
	}
}

func TestRestaurantRepository_ListLiked(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	user := testutil.SeedUser(t, db, "diner@example.com")

	liked := testutil.SeedRestaurant(t, db, owner.ID, "Liked")
	passed := testutil.SeedRestaurant(t, db, owner.ID, "Passed")

	swipes := []models.Swipe{
		{RestaurantID: liked.ID, UserID: user.ID, Liked: true},
		{RestaurantID: liked.ID, UserID: user.ID, Liked: true}, // repeat swipe
		{RestaurantID: passed.ID, UserID: user.ID, Liked: false},
	}
	for i := range swipes {
		if err := repo.CreateSwipe(&swipes[i]); err != nil {
			t.Fatalf("CreateSwipe() error = %v", err)
		}
	}

	restaurants, err := repo.ListLiked(user.ID)
	if err != nil {
		t.Fatalf("ListLiked() error = %v", err)
	}
	if len(restaurants) != 1 {
		t.Fatalf("ListLiked() returned %d restaurants, want 1", len(restaurants))
	}
	if restaurants[0].ID != liked.ID {
		t.Errorf("ListLiked() id = %d, want %d", restaurants[0].ID, liked.ID)
	}

	count, err := repo.CountLiked(user.ID)
	if err != nil {
		t.Fatalf("CountLiked() error = %v", err)
	}
	if count != 1 {
		t.Errorf("CountLiked() = %d, want 1", count)
	}
}

func TestRestaurantRepository_Photos(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRestaurantRepository(db)

	owner := testutil.SeedManager(t, db, "owner@example.com")
	restaurant := testutil.SeedRestaurant(t, db, owner.ID, "Snapshot")

	if _, err := repo.AddPhoto(restaurant.ID, "https://img.example.com/1.jpg"); err != nil {
		t.Fatalf("AddPhoto() error = %v", err)
	}

	found, err := repo.FindByID(restaurant.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if len(found.Photos) != 1 {
		t.Fatalf("FindByID() preloaded %d photos, want 1", len(found.Photos))
	}
	if found.Photos[0].URL != "https://img.example.com/1.jpg" {
		t.Errorf("photo url = %q", found.Photos[0].URL)
	}
}
