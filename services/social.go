package services

import (
	"github.com/jartman86/growshare-sub005/models"

	"gorm.io/gorm"
)

// RemoveFollowEdge deletes the edge outright. The composite unique index on
// (follower_id, followee_id) does not exclude soft-deleted rows, so a
// tombstone there would block any later re-follow.
func RemoveFollowEdge(db *gorm.DB, followerID, followeeID uint) (int64, error) {
	res := db.Unscoped().
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{})
	return res.RowsAffected, res.Error
}

// EraseAccount removes the account row and its follow edges outright. The
// email and username unique indexes do not exclude soft-deleted rows, so the
// identity only frees up for re-registration if the row really goes away.
func EraseAccount(db *gorm.DB, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().
			Where("follower_id = ? OR followee_id = ?", userID, userID).
			Delete(&models.Follow{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&models.User{}, userID).Error
	})
}
