package routes

import (
	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
)

// FollowUser creates a follow edge. There is no pre-check for duplicates:
// the composite unique index settles concurrent requests, and a violation
// comes back as a 409.
func FollowUser(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	targetID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid user ID", ctx)
		return
	}

	if targetID == claims.ID {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "You cannot follow yourself", ctx)
		return
	}

	var target models.User
	if err := storage.DB.Select("id").First(&target, targetID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	follow := models.Follow{FollowerID: claims.ID, FolloweeID: targetID}
	if err := storage.DB.Create(&follow).Error; err != nil {
		if services.IsUniqueViolation(err) {
			utils.CreateConflict("Already following this user", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&follow)
}

func UnfollowUser(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	targetID, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid user ID", ctx)
		return
	}

	affected, err := services.RemoveFollowEdge(storage.DB, claims.ID, targetID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if affected == 0 {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{"unfollowed": true})
}

func GetFollowers(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var follows []models.Follow
	if err := storage.DB.Preload("Follower").
		Where("followee_id = ?", id).Order("created_at DESC").
		Find(&follows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	users := make([]*models.User, 0, len(follows))
	for i := range follows {
		if follows[i].Follower != nil {
			users = append(users, follows[i].Follower)
		}
	}
	ctx.JSON(users)
}

func GetFollowing(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var follows []models.Follow
	if err := storage.DB.Preload("Followee").
		Where("follower_id = ?", id).Order("created_at DESC").
		Find(&follows).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	users := make([]*models.User, 0, len(follows))
	for i := range follows {
		if follows[i].Followee != nil {
			users = append(users, follows[i].Followee)
		}
	}
	ctx.JSON(users)
}

// GetFollowingActivity is the home feed: recent activity from accounts the
// viewer follows.
func GetFollowingActivity(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var activities []models.Activity
	err := storage.DB.
		Joins("JOIN follows f ON f.followee_id = activities.user_id AND f.deleted_at IS NULL").
		Where("f.follower_id = ?", claims.ID).
		Order("activities.created_at DESC").
		Limit(100).
		Find(&activities).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(activities)
}
