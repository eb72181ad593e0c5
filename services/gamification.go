package services

import (
	"fmt"
	"math"

	"github.com/jartman86/growshare-sub005/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Levels follow quadratic spacing: level L starts at (L-1)^2 * 100 points.
// Level 1 starts at 0, level 2 at 100, level 3 at 400, level 4 at 900.

// LevelThreshold returns the point total at which the given level begins.
func LevelThreshold(level int) int {
	if level < 1 {
		return 0
	}
	return (level - 1) * (level - 1) * 100
}

// CurrentLevel maps a cumulative point total to a level, monotonically.
func CurrentLevel(points int) int {
	if points < 0 {
		return 1
	}
	level := int(math.Sqrt(float64(points)/100.0)) + 1
	// Guard against float rounding at exact thresholds.
	for LevelThreshold(level+1) <= points {
		level++
	}
	for level > 1 && LevelThreshold(level) > points {
		level--
	}
	return level
}

// PointsForNextLevel returns the total needed to reach the level after the
// given one.
func PointsForNextLevel(level int) int {
	return level * level * 100
}

// LevelProgress returns the percent progress through the current level,
// clamped to [0, 100].
func LevelProgress(points int) float64 {
	level := CurrentLevel(points)
	lower := LevelThreshold(level)
	upper := PointsForNextLevel(level)
	if upper <= lower {
		return 0
	}
	progress := float64(points-lower) / float64(upper-lower) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// DefaultPointValues are the standard awards per category.
var DefaultPointValues = map[string]int{
	models.PointsBookingCompleted: 50,
	models.PointsReviewWritten:    25,
	models.PointsGuidePublished:   75,
	models.PointsProfileCompleted: 25,
	models.PointsVerifiedIdentity: 100,
	models.PointsFirstListing:     50,
}

// AwardPoints appends one immutable ledger event and bumps the user's
// running total in a single transaction, so the cached total can never
// drift from the event log. Level changes and the activity feed entry ride
// in the same transaction.
func AwardPoints(db *gorm.DB, userID uint, category string, points int, title string, metadata datatypes.JSON) (*models.PointsEvent, error) {
	event := models.PointsEvent{
		UserID:   userID,
		Category: category,
		Points:   points,
		Title:    title,
		Metadata: metadata,
	}

	var leveledUpTo int

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		res := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("total_points", gorm.Expr("total_points + ?", points))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var user models.User
		if err := tx.Select("id, total_points, level").First(&user, userID).Error; err != nil {
			return err
		}

		newLevel := CurrentLevel(user.TotalPoints)
		if newLevel != user.Level {
			if err := tx.Model(&models.User{}).Where("id = ?", userID).Update("level", newLevel).Error; err != nil {
				return err
			}
			if newLevel > user.Level {
				leveledUpTo = newLevel
			}
		}

		activity := models.Activity{
			UserID:  userID,
			Kind:    "points_earned",
			Message: fmt.Sprintf("Earned %d points: %s", points, title),
			RefType: "points_event",
			RefID:   event.ID,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	if leveledUpTo > 0 {
		notifyLevelUp(db, userID, leveledUpTo)
	}

	return &event, nil
}

// AwardStandardPoints awards the default value for a category.
func AwardStandardPoints(db *gorm.DB, userID uint, category string, title string, metadata datatypes.JSON) (*models.PointsEvent, error) {
	points, ok := DefaultPointValues[category]
	if !ok {
		return nil, fmt.Errorf("unknown points category %q", category)
	}
	return AwardPoints(db, userID, category, points, title, metadata)
}

// notifyLevelUp records the level-up outside the points transaction;
// notification rows are best-effort.
func notifyLevelUp(db *gorm.DB, userID uint, level int) {
	notification := models.Notification{
		UserID:  userID,
		Type:    "level_up",
		Title:   "Level up!",
		Message: fmt.Sprintf("You reached level %d. Next level at %d points.", level, PointsForNextLevel(level)),
		RefType: "user",
		RefID:   userID,
	}
	db.Create(&notification)

	activity := models.Activity{
		UserID:  userID,
		Kind:    "level_up",
		Message: fmt.Sprintf("Reached level %d", level),
		RefType: "user",
		RefID:   userID,
	}
	db.Create(&activity)

	go NewNotificationService().SendLevelUpNotification(userID, level)
}
