package storage_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// These tests need a real Postgres: the overlap guard is an exclusion
// constraint and the identity-reuse cases hinge on index behavior. Set
// TEST_DATABASE_URL to run them.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("connecting to test database: %v", err)
	}
	storage.Migrate(db)
	return db
}

func makeUser(t *testing.T, db *gorm.DB, tag string) *models.User {
	t.Helper()
	suffix := fmt.Sprintf("%s-%d", tag, time.Now().UnixNano())
	user := models.User{
		FirstName: "Test",
		LastName:  tag,
		Username:  "u-" + suffix,
		Email:     suffix + "@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("creating user %s: %v", tag, err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("user_id = ?", user.ID).Delete(&models.PointsEvent{})
		db.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Activity{})
		db.Unscoped().Delete(&models.User{}, user.ID)
	})
	return &user
}

func makePlot(t *testing.T, db *gorm.DB, ownerID uint) *models.Plot {
	t.Helper()
	plot := models.Plot{OwnerID: ownerID, Title: "Test plot", DailyRate: 10}
	if err := db.Create(&plot).Error; err != nil {
		t.Fatalf("creating plot: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Where("plot_id = ?", plot.ID).Delete(&models.Reservation{})
		db.Unscoped().Delete(&models.Plot{}, plot.ID)
	})
	return &plot
}

func TestExclusionConstraintRejectsOverlap(t *testing.T) {
	db := openTestDB(t)
	owner := makeUser(t, db, "owner")
	renter := makeUser(t, db, "renter")
	plot := makePlot(t, db, owner.ID)

	day := func(offset int) time.Time {
		return time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, offset)
	}

	first := models.Reservation{
		PlotID:    plot.ID,
		RenterID:  renter.ID,
		StartDate: day(1),
		EndDate:   day(10),
		Status:    models.ReservationApproved,
	}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("first reservation: %v", err)
	}

	// Direct insert, bypassing the availability pre-check: this is the write
	// that loses a race between two requests whose pre-checks both passed.
	overlapping := models.Reservation{
		PlotID:    plot.ID,
		RenterID:  renter.ID,
		StartDate: day(5),
		EndDate:   day(15),
		Status:    models.ReservationPending,
	}
	err := db.Create(&overlapping).Error
	if err == nil {
		t.Fatal("overlapping reservation was accepted")
	}
	if !services.IsExclusionViolation(err) {
		t.Fatalf("expected exclusion violation, got %v", err)
	}

	// Back-to-back is allowed: ranges are half-open, so touching at day 10
	// is not an overlap.
	adjacent := models.Reservation{
		PlotID:    plot.ID,
		RenterID:  renter.ID,
		StartDate: day(10),
		EndDate:   day(15),
		Status:    models.ReservationPending,
	}
	if err := db.Create(&adjacent).Error; err != nil {
		t.Fatalf("back-to-back reservation rejected: %v", err)
	}

	// Cancelled reservations release their dates.
	if err := db.Model(&first).Update("status", models.ReservationCancelled).Error; err != nil {
		t.Fatalf("cancelling first reservation: %v", err)
	}
	rebook := models.Reservation{
		PlotID:    plot.ID,
		RenterID:  renter.ID,
		StartDate: day(1),
		EndDate:   day(10),
		Status:    models.ReservationPending,
	}
	if err := db.Create(&rebook).Error; err != nil {
		t.Fatalf("rebooking released dates rejected: %v", err)
	}
}

func TestRefollowAfterUnfollow(t *testing.T) {
	db := openTestDB(t)
	a := makeUser(t, db, "follower")
	b := makeUser(t, db, "followee")
	t.Cleanup(func() {
		db.Unscoped().Where("follower_id = ?", a.ID).Delete(&models.Follow{})
	})

	follow := models.Follow{FollowerID: a.ID, FolloweeID: b.ID}
	if err := db.Create(&follow).Error; err != nil {
		t.Fatalf("first follow: %v", err)
	}

	affected, err := services.RemoveFollowEdge(db, a.ID, b.ID)
	if err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	if affected != 1 {
		t.Fatalf("unfollow affected %d rows, want 1", affected)
	}

	// The unique index on (follower_id, followee_id) must be free again.
	refollow := models.Follow{FollowerID: a.ID, FolloweeID: b.ID}
	if err := db.Create(&refollow).Error; err != nil {
		t.Fatalf("re-follow after unfollow failed: %v", err)
	}
}

func TestReregisterAfterAccountErase(t *testing.T) {
	db := openTestDB(t)
	user := makeUser(t, db, "reset")
	email, username := user.Email, user.Username

	if err := services.EraseAccount(db, user.ID); err != nil {
		t.Fatalf("erasing account: %v", err)
	}

	// The email and username unique indexes must be free again.
	again := models.User{FirstName: "Test", Username: username, Email: email}
	if err := db.Create(&again).Error; err != nil {
		t.Fatalf("re-registering erased identity failed: %v", err)
	}
	t.Cleanup(func() {
		db.Unscoped().Delete(&models.User{}, again.ID)
	})
}

func TestAwardStandardPointsLedger(t *testing.T) {
	db := openTestDB(t)
	user := makeUser(t, db, "points")

	event, err := services.AwardStandardPoints(db, user.ID, models.PointsFirstListing, "Listed your first plot", nil)
	if err != nil {
		t.Fatalf("awarding points: %v", err)
	}
	if event.Points <= 0 {
		t.Fatalf("award wrote a non-positive event: %+v", event)
	}

	var reloaded models.User
	if err := db.First(&reloaded, user.ID).Error; err != nil {
		t.Fatalf("reloading user: %v", err)
	}
	if reloaded.TotalPoints != event.Points {
		t.Errorf("total points = %d, want %d", reloaded.TotalPoints, event.Points)
	}
	if want := services.CurrentLevel(reloaded.TotalPoints); reloaded.Level != want {
		t.Errorf("level = %d, want %d", reloaded.Level, want)
	}
}
