package models

import (
	"gorm.io/gorm"
)

// Follow is a directed edge between accounts. The composite unique index is
// the only duplicate guard; a second insert surfaces as a constraint
// violation that the route layer translates to a conflict error. Edges are
// removed with Unscoped deletes: a soft-deleted row would keep occupying the
// index and block re-following.
type Follow struct {
	gorm.Model
	FollowerID uint `json:"followerID" gorm:"not null;uniqueIndex:idx_follow_edge"`
	FolloweeID uint `json:"followeeID" gorm:"not null;uniqueIndex:idx_follow_edge;index"`

	Follower *User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
	Followee *User `json:"followee,omitempty" gorm:"foreignKey:FolloweeID"`
}
