package routes

import (
	"fmt"
	"log"
	"time"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"gorm.io/gorm"
)

type GuideInput struct {
	Title      string `json:"title" validate:"required,max=200"`
	Summary    string `json:"summary" validate:"max=500"`
	Body       string `json:"body" validate:"required"`
	CoverImage string `json:"coverImage" validate:"omitempty,url"`
	Tags       string `json:"tags" validate:"max=300"`
}

func CreateGuide(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input GuideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guide := models.Guide{
		AuthorID:   claims.ID,
		Title:      input.Title,
		Summary:    input.Summary,
		Body:       input.Body,
		CoverImage: input.CoverImage,
		Tags:       input.Tags,
		Status:     models.GuideDraft,
	}
	if err := storage.DB.Create(&guide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&guide)
}

func UpdateGuide(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if guide.AuthorID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}

	var input GuideInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	guide.Title = input.Title
	guide.Summary = input.Summary
	guide.Body = input.Body
	guide.CoverImage = input.CoverImage
	guide.Tags = input.Tags

	if err := storage.DB.Save(&guide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(&guide)
}

// PublishGuide makes a draft public. Only the first publication earns
// points; PublishedAt stays set when a guide is unpublished later, so a
// republish cannot earn again.
func PublishGuide(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if guide.AuthorID != claims.ID {
		utils.CreateForbidden(ctx)
		return
	}
	if guide.Status == models.GuidePublished {
		utils.CreateConflict("Guide is already published", ctx)
		return
	}

	firstPublication := guide.PublishedAt == nil

	now := time.Now()
	guide.Status = models.GuidePublished
	guide.PublishedAt = &now
	if err := storage.DB.Save(&guide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if firstPublication {
		if _, err := services.AwardStandardPoints(storage.DB, claims.ID, models.PointsGuidePublished,
			fmt.Sprintf("Published guide: %s", guide.Title), nil); err != nil {
			log.Printf("⚠️  points award failed (guide published, user %d): %v", claims.ID, err)
		}
		activity := models.Activity{
			UserID:  claims.ID,
			Kind:    "guide_published",
			Message: fmt.Sprintf("Published a guide: %s", guide.Title),
			RefType: "guide",
			RefID:   guide.ID,
		}
		storage.DB.Create(&activity)
	}

	ctx.JSON(&guide)
}

func GetGuide(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var guide models.Guide
	if err := storage.DB.Preload("Author").First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	// Drafts are only visible to their author.
	if guide.Status != models.GuidePublished {
		tok := jsonWT.Get(ctx)
		claims, _ := tok.(*utils.AccessToken)
		if claims == nil || (claims.ID != guide.AuthorID && !claims.IsAdmin()) {
			utils.CreateNotFound(ctx)
			return
		}
	}

	ctx.JSON(&guide)
}

func ListPublishedGuides(ctx iris.Context) {
	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	query := storage.DB.Model(&models.Guide{}).Where("status = ?", models.GuidePublished)
	if tag := ctx.URLParam("tag"); tag != "" {
		query = query.Where("tags LIKE ?", "%"+tag+"%")
	}

	var total int64
	query.Count(&total)

	var guides []models.Guide
	if err := query.Preload("Author").
		Order("score DESC, published_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&guides).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, guides, page, perPage, total)
}

func GetMyGuides(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var guides []models.Guide
	if err := storage.DB.Where("author_id = ?", claims.ID).
		Order("updated_at DESC").Find(&guides).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(guides)
}

type VoteInput struct {
	Value int `json:"value" validate:"required,oneof=1 -1"`
}

// VoteGuide records one vote per user per guide; the unique index is the
// duplicate guard and a second vote returns 409. The cached score on the
// guide moves in the same transaction as the vote row.
func VoteGuide(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Invalid guide ID", ctx)
		return
	}

	var input VoteInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if guide.Status != models.GuidePublished {
		utils.CreateError(iris.StatusBadRequest, utils.ErrKindValidation, "Guide is not published", ctx)
		return
	}

	vote := models.GuideVote{GuideID: guide.ID, UserID: claims.ID, Value: input.Value}
	txErr := storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&vote).Error; err != nil {
			return err
		}
		return tx.Model(&models.Guide{}).Where("id = ?", guide.ID).
			Update("score", gorm.Expr("score + ?", input.Value)).Error
	})
	if txErr != nil {
		if services.IsUniqueViolation(txErr) {
			utils.CreateConflict("You already voted on this guide", ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&vote)
}

func DeleteGuide(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var guide models.Guide
	if err := storage.DB.First(&guide, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	if guide.AuthorID != claims.ID && !claims.IsAdmin() {
		utils.CreateForbidden(ctx)
		return
	}

	if err := storage.DB.Delete(&guide).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"deleted": true})
}
