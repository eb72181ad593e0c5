package routes

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/exp/slices"
	"gorm.io/datatypes"
)

type CreatePlotInput struct {
	Title        string   `json:"title" validate:"required,max=256"`
	Description  string   `json:"description" validate:"max=5000"`
	ResourceType string   `json:"resourceType" validate:"required,oneof=land_plot tool"`
	AddressLine1 string   `json:"addressLine1" validate:"required,max=512"`
	City         string   `json:"city" validate:"required,max=80"`
	State        string   `json:"state" validate:"max=80"`
	Zip          string   `json:"zip" validate:"max=20"`
	Country      string   `json:"country" validate:"required,max=80"`
	Lat          float32  `json:"lat" validate:"required"`
	Lng          float32  `json:"lng" validate:"required"`
	SizeSqMeters float32  `json:"sizeSqMeters" validate:"omitempty,min=0"`
	SoilType     string   `json:"soilType" validate:"max=40"`
	SunExposure  string   `json:"sunExposure" validate:"omitempty,oneof=full_sun partial_shade shade"`
	WaterAccess  *bool    `json:"waterAccess"`
	DailyRate    float64  `json:"dailyRate" validate:"required,min=0"`
	Currency     string   `json:"currency" validate:"omitempty,len=3"`
	MinLeaseDays int      `json:"minLeaseDays" validate:"omitempty,min=1"`
	InstantBook  *bool    `json:"instantBook"`
	Images       []string `json:"images"`
}

// CreatePlot lists a new plot or tool. The account picks up the landowner
// role on its first listing and earns the first-listing award.
func CreatePlot(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input CreatePlotInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	images, _ := json.Marshal(input.Images)

	minLease := input.MinLeaseDays
	if minLease == 0 {
		minLease = 1
	}
	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	active := true
	plot := models.Plot{
		OwnerID:      claims.ID,
		Title:        input.Title,
		Description:  input.Description,
		ResourceType: input.ResourceType,
		AddressLine1: input.AddressLine1,
		City:         input.City,
		State:        input.State,
		Zip:          input.Zip,
		Country:      input.Country,
		Lat:          input.Lat,
		Lng:          input.Lng,
		SizeSqMeters: input.SizeSqMeters,
		SoilType:     input.SoilType,
		SunExposure:  input.SunExposure,
		WaterAccess:  input.WaterAccess,
		DailyRate:    input.DailyRate,
		Currency:     currency,
		MinLeaseDays: minLease,
		InstantBook:  input.InstantBook,
		Images:       datatypes.JSON(images),
		Status:       models.PlotStatusActive,
		IsActive:     &active,
	}

	var priorListings int64
	storage.DB.Model(&models.Plot{}).Where("owner_id = ?", claims.ID).Count(&priorListings)

	if err := storage.DB.Create(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if priorListings == 0 {
		if _, err := services.AwardStandardPoints(storage.DB, claims.ID, models.PointsFirstListing, "Listed your first plot", nil); err != nil {
			log.Printf("⚠️  points award failed (first listing, user %d): %v", claims.ID, err)
		}
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(&plot)
}

func GetPlot(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var plot models.Plot
	if err := storage.DB.Preload("Owner").Preload("Reviews", "hidden = false").
		First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(&plot)
}

func GetPlotsByUserID(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var plots []models.Plot
	if err := storage.DB.Where("owner_id = ?", id).Order("created_at DESC").Find(&plots).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(plots)
}

type UpdatePlotInput struct {
	Title        string   `json:"title" validate:"omitempty,max=256"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	DailyRate    *float64 `json:"dailyRate" validate:"omitempty,min=0"`
	MinLeaseDays *int     `json:"minLeaseDays" validate:"omitempty,min=1"`
	InstantBook  *bool    `json:"instantBook"`
	SoilType     string   `json:"soilType" validate:"omitempty,max=40"`
	SunExposure  string   `json:"sunExposure" validate:"omitempty,oneof=full_sun partial_shade shade"`
	WaterAccess  *bool    `json:"waterAccess"`
	Images       []string `json:"images"`
	IsActive     *bool    `json:"isActive"`
}

func UpdatePlot(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var plot models.Plot
	if err := storage.DB.First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if plot.OwnerID != claims.ID && !claims.IsAdmin() {
		utils.CreateForbidden(ctx)
		return
	}

	var input UpdatePlotInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.Title != "" {
		plot.Title = input.Title
	}
	if input.Description != "" {
		plot.Description = input.Description
	}
	if input.DailyRate != nil {
		plot.DailyRate = *input.DailyRate
	}
	if input.MinLeaseDays != nil {
		plot.MinLeaseDays = *input.MinLeaseDays
	}
	if input.InstantBook != nil {
		plot.InstantBook = input.InstantBook
	}
	if input.SoilType != "" {
		plot.SoilType = input.SoilType
	}
	if input.SunExposure != "" {
		plot.SunExposure = input.SunExposure
	}
	if input.WaterAccess != nil {
		plot.WaterAccess = input.WaterAccess
	}
	if input.Images != nil {
		images, _ := json.Marshal(input.Images)
		plot.Images = datatypes.JSON(images)
	}
	if input.IsActive != nil {
		plot.IsActive = input.IsActive
	}

	if err := storage.DB.Save(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&plot)
}

func DeletePlot(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)
	id := ctx.Params().Get("id")

	var plot models.Plot
	if err := storage.DB.First(&plot, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if plot.OwnerID != claims.ID && !claims.IsAdmin() {
		utils.CreateForbidden(ctx)
		return
	}

	// Listings with an open lease cannot be withdrawn from under the renter.
	var open int64
	storage.DB.Model(&models.Reservation{}).
		Where("plot_id = ? AND status IN ?", plot.ID,
			[]string{models.ReservationPending, models.ReservationApproved, models.ReservationActive}).
		Count(&open)
	if open > 0 {
		utils.CreateConflict("Plot has open reservations", ctx)
		return
	}

	if err := storage.DB.Delete(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}

type DeletePlotImageInput struct {
	PlotID uint   `json:"plotID" validate:"required"`
	URL    string `json:"url" validate:"required,url"`
}

func DeletePlotImage(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input DeletePlotImageInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var plot models.Plot
	if err := storage.DB.Where("id = ? AND owner_id = ?", input.PlotID, userID).First(&plot).Error; err != nil {
		utils.CreateForbidden(ctx)
		return
	}

	var images []string
	if plot.Images != nil {
		json.Unmarshal(plot.Images, &images)
	}
	idx := slices.Index(images, input.URL)
	if idx == -1 {
		utils.CreateNotFound(ctx)
		return
	}
	images = slices.Delete(images, idx, idx+1)

	raw, _ := json.Marshal(images)
	plot.Images = datatypes.JSON(raw)
	if err := storage.DB.Save(&plot).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.DeleteImage(input.URL)

	ctx.JSON(&plot)
}

type BoundingBoxInput struct {
	LatLow  float32 `json:"latLow" validate:"required"`
	LatHigh float32 `json:"latHigh" validate:"required"`
	LngLow  float32 `json:"lngLow" validate:"required"`
	LngHigh float32 `json:"lngHigh" validate:"required"`
}

// GetPlotsByBoundingBox powers the map view.
func GetPlotsByBoundingBox(ctx iris.Context) {
	var input BoundingBoxInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var plots []models.Plot
	err := storage.DB.
		Where("lat BETWEEN ? AND ? AND lng BETWEEN ? AND ?", input.LatLow, input.LatHigh, input.LngLow, input.LngHigh).
		Where("status = ? AND (is_active IS NULL OR is_active = true)", models.PlotStatusActive).
		Find(&plots).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(plots)
}

// SearchPlots filters listings by type, location text, rate and features.
func SearchPlots(ctx iris.Context) {
	query := storage.DB.Model(&models.Plot{}).
		Where("status = ? AND (is_active IS NULL OR is_active = true)", models.PlotStatusActive)

	if rt := ctx.URLParam("resourceType"); rt != "" {
		query = query.Where("resource_type = ?", rt)
	}
	if city := ctx.URLParam("city"); city != "" {
		query = query.Where("lower(city) = lower(?)", city)
	}
	if country := ctx.URLParam("country"); country != "" {
		query = query.Where("lower(country) = lower(?)", country)
	}
	if maxRate := ctx.URLParam("maxDailyRate"); maxRate != "" {
		if v, err := strconv.ParseFloat(maxRate, 64); err == nil {
			query = query.Where("daily_rate <= ?", v)
		}
	}
	if soil := ctx.URLParam("soilType"); soil != "" {
		query = query.Where("soil_type = ?", soil)
	}
	if sun := ctx.URLParam("sunExposure"); sun != "" {
		query = query.Where("sun_exposure = ?", sun)
	}
	if ctx.URLParam("waterAccess") == "true" {
		query = query.Where("water_access = true")
	}
	if ctx.URLParam("instantBook") == "true" {
		query = query.Where("instant_book = true")
	}

	page := ctx.URLParamIntDefault("page", 1)
	perPage := ctx.URLParamIntDefault("perPage", 20)
	if perPage <= 0 || perPage > 100 {
		perPage = 20
	}

	var total int64
	query.Count(&total)

	var plots []models.Plot
	if err := query.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&plots).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, plots, page, perPage, total)
}
