package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/jartman86/growshare-sub005/models"
	"github.com/jartman86/growshare-sub005/services"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/MicahParks/keyfunc"
	"github.com/golang-jwt/jwt/v4"
	"github.com/kataras/iris/v12"
	jsonWT "github.com/kataras/iris/v12/middleware/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

type RegisterUserInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Username  string `json:"username" validate:"required,min=3,max=40,alphanum"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=256"`
	Role      string `json:"role" validate:"omitempty,oneof=grower landowner"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialUserInput struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

type GoogleUserRes struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var newUser models.User
	userExists, userExistsErr := getAndHandleUserExists(&newUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if userExists {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	hashedPassword, hashErr := hashAndSaltPassword(userInput.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := userInput.Role
	if role == "" {
		role = models.RoleGrower
	}
	roles, _ := json.Marshal([]string{role})

	newUser = models.User{
		FirstName:         userInput.FirstName,
		LastName:          userInput.LastName,
		Username:          strings.ToLower(userInput.Username),
		Email:             strings.ToLower(userInput.Email),
		Password:          hashedPassword,
		Roles:             datatypes.JSON(roles),
		ProfileVisibility: models.VisibilityPublic,
		SocialLogin:       false,
	}

	// The unique index on username is the only duplicate guard; a losing
	// concurrent insert comes back as a constraint violation.
	if err := storage.DB.Create(&newUser).Error; err != nil {
		if services.IsUniqueViolation(err) {
			utils.CreateUsernameTaken(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(newUser, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existingUser models.User
	errorMsg := "Invalid email or password."
	userExists, userExistsErr := getAndHandleUserExists(&existingUser, userInput.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.SocialLogin {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Social Login Account", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GoogleLoginOrSignUp verifies the Google access token against the userinfo
// endpoint and auto-provisions an account on first sight.
func GoogleLoginOrSignUp(ctx iris.Context) {
	var userInput SocialUserInput
	err := ctx.ReadJSON(&userInput)
	if err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	endpoint := "https://www.googleapis.com/userinfo/v2/me"

	client := &http.Client{}
	req, _ := http.NewRequest("GET", endpoint, nil)
	req.Header.Set("Authorization", "Bearer "+userInput.AccessToken)
	res, googleErr := client.Do(req)
	if googleErr != nil {
		utils.CreateUpstreamError(ctx)
		return
	}

	defer res.Body.Close()
	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateUpstreamError(ctx)
		return
	}

	var googleBody GoogleUserRes
	json.Unmarshal(body, &googleBody)

	if googleBody.Email == "" {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Could not verify Google account", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, googleBody.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		nameParts := strings.SplitN(googleBody.Name, " ", 2)
		firstName := nameParts[0]
		lastName := ""
		if len(nameParts) > 1 {
			lastName = nameParts[1]
		}
		roles, _ := json.Marshal([]string{models.RoleGrower})
		user = models.User{
			FirstName:         firstName,
			LastName:          lastName,
			Username:          usernameFromEmail(googleBody.Email),
			Email:             strings.ToLower(googleBody.Email),
			AvatarURL:         googleBody.Picture,
			Roles:             datatypes.JSON(roles),
			ProfileVisibility: models.VisibilityPublic,
			SocialLogin:       true,
			SocialProvider:    "google",
		}
		if err := storage.DB.Create(&user).Error; err != nil {
			if services.IsUniqueViolation(err) {
				// Username collision on auto-provision: retry once with a suffix.
				user.Username = user.Username + utils.GenerateShortToken(2)
				if err := storage.DB.Create(&user).Error; err != nil {
					utils.CreateInternalServerError(ctx)
					return
				}
			} else {
				utils.CreateInternalServerError(ctx)
				return
			}
		}
	} else if !user.SocialLogin || user.SocialProvider != "google" {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	returnUser(user, ctx)
}

type AppleUserInput struct {
	IdentityToken string `json:"identityToken" validate:"required"`
}

// AppleLoginOrSignUp validates the Apple identity token against Apple's
// published JWKS and auto-provisions an account on first sight.
func AppleLoginOrSignUp(ctx iris.Context) {
	var userInput AppleUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	res, httpErr := http.Get("https://appleid.apple.com/auth/keys")
	if httpErr != nil {
		utils.CreateUpstreamError(ctx)
		return
	}
	defer res.Body.Close()

	body, bodyErr := io.ReadAll(res.Body)
	if bodyErr != nil {
		utils.CreateUpstreamError(ctx)
		return
	}

	jwks, jwksErr := keyfunc.NewJSON(body)
	if jwksErr != nil {
		utils.CreateUpstreamError(ctx)
		return
	}

	// Keyfunc picks the JWKS key matching the token's kid.
	token, tokenErr := jwt.Parse(userInput.IdentityToken, jwks.Keyfunc)
	if tokenErr != nil || !token.Valid {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Invalid Apple identity token", ctx)
		return
	}

	email := fmt.Sprint(token.Claims.(jwt.MapClaims)["email"])
	if email == "" || email == "<nil>" {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "Apple token carries no email", ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if !userExists {
		roles, _ := json.Marshal([]string{models.RoleGrower})
		user = models.User{
			Username:          usernameFromEmail(email),
			Email:             strings.ToLower(email),
			Roles:             datatypes.JSON(roles),
			ProfileVisibility: models.VisibilityPublic,
			SocialLogin:       true,
			SocialProvider:    "apple",
		}
		if err := storage.DB.Create(&user).Error; err != nil {
			if services.IsUniqueViolation(err) {
				user.Username = user.Username + utils.GenerateShortToken(2)
				if err := storage.DB.Create(&user).Error; err != nil {
					utils.CreateInternalServerError(ctx)
					return
				}
			} else {
				utils.CreateInternalServerError(ctx)
				return
			}
		}
	} else if !user.SocialLogin || user.SocialProvider != "apple" {
		utils.CreateEmailAlreadyRegistered(ctx)
		return
	}

	returnUser(user, ctx)
}

func ForgotPassword(ctx iris.Context) {
	var input struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	userExists, userExistsErr := getAndHandleUserExists(&user, input.Email)
	if userExistsErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Always answer 200 so the endpoint cannot be used to probe for accounts.
	if !userExists || user.SocialLogin {
		ctx.JSON(iris.Map{"emailSent": true})
		return
	}

	token, tokenErr := utils.CreateForgotPasswordToken(user.ID, user.Email)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	// Delivery is the mail provider's job; out of scope here.
	_ = token
	ctx.JSON(iris.Map{"emailSent": true})
}

func ResetPassword(ctx iris.Context) {
	var input struct {
		Password string `json:"password" validate:"required,min=8,max=256"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	claims := jsonWT.Get(ctx).(*utils.ForgotPasswordToken)

	hashedPassword, hashErr := hashAndSaltPassword(input.Password)
	if hashErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if err := storage.DB.Model(&models.User{}).Where("id = ?", claims.ID).
		Update("password", hashedPassword).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"passwordReset": true})
}

func hashAndSaltPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func getAndHandleUserExists(user *models.User, email string) (bool, error) {
	userExistsQuery := storage.DB.Where("email = ?", strings.ToLower(email)).Limit(1).Find(&user)
	if userExistsQuery.Error != nil {
		return false, userExistsQuery.Error
	}
	return userExistsQuery.RowsAffected > 0, nil
}

func usernameFromEmail(email string) string {
	name := strings.ToLower(strings.SplitN(email, "@", 2)[0])
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return -1
	}, name)
	if len(name) < 3 {
		name = name + utils.GenerateShortToken(2)
	}
	if len(name) > 36 {
		name = name[:36]
	}
	return name
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"username":     user.Username,
		"email":        user.Email,
		"level":        user.Level,
		"totalPoints":  user.TotalPoints,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}

// CanViewProfile is the visibility rule cascade: self, then admin, then
// public profiles, then accepted connections (mutual follow).
func CanViewProfile(viewer *utils.AccessToken, target *models.User) bool {
	if viewer != nil && viewer.ID == target.ID {
		return true
	}
	if viewer != nil && viewer.IsAdmin() {
		return true
	}
	if target.ProfileVisibility != models.VisibilityPrivate {
		return true
	}
	if viewer == nil {
		return false
	}
	var edges int64
	storage.DB.Model(&models.Follow{}).
		Where("(follower_id = ? AND followee_id = ?) OR (follower_id = ? AND followee_id = ?)",
			viewer.ID, target.ID, target.ID, viewer.ID).
		Count(&edges)
	return edges == 2
}

// GetUser returns a profile, subject to the visibility rules. Points, level
// and progress ride along for the gamification UI.
func GetUser(ctx iris.Context) {
	id := ctx.Params().Get("id")

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var viewer *utils.AccessToken
	if tok := jsonWT.Get(ctx); tok != nil {
		viewer, _ = tok.(*utils.AccessToken)
	}

	if !CanViewProfile(viewer, &user) {
		utils.CreateForbidden(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"user":            &user,
		"level":           user.Level,
		"totalPoints":     user.TotalPoints,
		"progressPercent": services.LevelProgress(user.TotalPoints),
		"nextLevelAt":     services.PointsForNextLevel(user.Level),
	})
}

type UpdateProfileInput struct {
	FirstName         string `json:"firstName" validate:"omitempty,max=256"`
	LastName          string `json:"lastName" validate:"omitempty,max=256"`
	Username          string `json:"username" validate:"omitempty,min=3,max=40,alphanum"`
	Bio               string `json:"bio" validate:"omitempty,max=2000"`
	AvatarURL         string `json:"avatarURL" validate:"omitempty,url"`
	PhoneNumber       string `json:"phoneNumber" validate:"omitempty,max=24"`
	ProfileVisibility string `json:"profileVisibility" validate:"omitempty,oneof=public private"`
	AllowsMessages    *bool  `json:"allowsMessages"`
}

func UpdateUserProfile(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input UpdateProfileInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	wasComplete := profileComplete(&user)

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Username != "" {
		user.Username = strings.ToLower(input.Username)
	}
	if input.Bio != "" {
		user.Bio = input.Bio
	}
	if input.AvatarURL != "" {
		user.AvatarURL = input.AvatarURL
	}
	if input.PhoneNumber != "" {
		user.PhoneNumber = utils.NormalizePhoneNumber(input.PhoneNumber)
	}
	if input.ProfileVisibility != "" {
		user.ProfileVisibility = input.ProfileVisibility
	}
	if input.AllowsMessages != nil {
		user.AllowsMessages = input.AllowsMessages
	}

	if err := storage.DB.Save(&user).Error; err != nil {
		if services.IsUniqueViolation(err) {
			utils.CreateUsernameTaken(ctx)
			return
		}
		utils.CreateInternalServerError(ctx)
		return
	}

	// First time the profile becomes complete earns points, once.
	if !wasComplete && profileComplete(&user) {
		var prior int64
		storage.DB.Model(&models.PointsEvent{}).
			Where("user_id = ? AND category = ?", user.ID, models.PointsProfileCompleted).
			Count(&prior)
		if prior == 0 {
			if _, err := services.AwardStandardPoints(storage.DB, user.ID, models.PointsProfileCompleted, "Completed your profile", nil); err != nil {
				log.Printf("⚠️  points award failed (profile completed, user %d): %v", user.ID, err)
			}
		}
	}

	ctx.JSON(&user)
}

func profileComplete(u *models.User) bool {
	return u.FirstName != "" && u.LastName != "" && u.Bio != "" && u.AvatarURL != ""
}

// AddRole lets an account take on the landowner role (e.g. before creating
// a first listing). Admin roles are only granted through the admin surface.
func AddRole(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var input struct {
		Role string `json:"role" validate:"required,oneof=grower landowner"`
	}
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.HasRole(input.Role) {
		ctx.JSON(&user)
		return
	}

	var roles []string
	if user.Roles != nil {
		json.Unmarshal(user.Roles, &roles)
	}
	roles = append(roles, input.Role)
	raw, _ := json.Marshal(roles)
	user.Roles = datatypes.JSON(raw)

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&user)
}

type SubmitVerificationInput struct {
	IDType       string `json:"idType" validate:"required,oneof=passport drivers_license national_id"`
	IDFrontImage string `json:"idFrontImage" validate:"required"`
	IDBackImage  string `json:"idBackImage"`
}

// SubmitVerification uploads government ID images and queues the account
// for admin review.
func SubmitVerification(ctx iris.Context) {
	userID := ctx.Values().Get("userID").(uint)

	var input SubmitVerificationInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, userID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	if user.VerificationStatus == "approved" {
		utils.CreateConflict("Account is already verified", ctx)
		return
	}

	frontRes := storage.UploadBase64Image(input.IDFrontImage, "")
	if frontRes["url"] == "" {
		utils.CreateUpstreamError(ctx)
		return
	}
	backURL := ""
	if input.IDBackImage != "" {
		backRes := storage.UploadBase64Image(input.IDBackImage, "")
		backURL = backRes["url"]
	}

	user.IDType = input.IDType
	user.IDFrontImage = frontRes["url"]
	user.IDBackImage = backURL
	user.VerificationStatus = "pending"

	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"submitted": true, "status": user.VerificationStatus})
}

// GetBillingSnapshot returns the cached subscription state. The payment
// processor owns the truth; callbacks refresh this copy elsewhere.
func GetBillingSnapshot(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	var user models.User
	if err := storage.DB.Select("id, subscription_status, subscription_period_end").
		First(&user, claims.ID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"subscriptionStatus":    user.SubscriptionStatus,
		"subscriptionPeriodEnd": user.SubscriptionPeriodEnd,
	})
}

func AlterPushToken(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var req struct {
		Token string `json:"token" validate:"required"`
		Op    string `json:"op" validate:"required,oneof=add remove"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var tokens []string
	if user.PushTokens != nil {
		json.Unmarshal(user.PushTokens, &tokens)
	}

	if req.Op == "add" {
		exists := false
		for _, t := range tokens {
			if t == req.Token {
				exists = true
				break
			}
		}
		if !exists {
			tokens = append(tokens, req.Token)
		}
	} else {
		filtered := tokens[:0]
		for _, t := range tokens {
			if t != req.Token {
				filtered = append(filtered, t)
			}
		}
		tokens = filtered
	}

	raw, _ := json.Marshal(tokens)
	user.PushTokens = datatypes.JSON(raw)
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&user)
}

func AllowsNotifications(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var req struct {
		AllowsNotifications *bool `json:"allowsNotifications" validate:"required"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if err := storage.DB.Model(&models.User{}).Where("id = ?", id).
		Update("allows_notifications", req.AllowsNotifications).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"updated": true})
}

// GetUserSavedPlots lists the plots an account has bookmarked.
func GetUserSavedPlots(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var ids []uint
	if user.SavedPlots != nil {
		json.Unmarshal(user.SavedPlots, &ids)
	}
	if len(ids) == 0 {
		ctx.JSON([]models.Plot{})
		return
	}

	var plots []models.Plot
	if err := storage.DB.Where("id IN ?", ids).Find(&plots).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(plots)
}

func AlterUserSavedPlots(ctx iris.Context) {
	params := ctx.Params()
	id := params.Get("id")

	var req struct {
		PlotID uint   `json:"plotID" validate:"required"`
		Op     string `json:"op" validate:"required,oneof=add remove"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var user models.User
	if err := storage.DB.First(&user, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	var ids []uint
	if user.SavedPlots != nil {
		json.Unmarshal(user.SavedPlots, &ids)
	}

	if req.Op == "add" {
		found := false
		for _, pid := range ids {
			if pid == req.PlotID {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, req.PlotID)
		}
	} else {
		filtered := ids[:0]
		for _, pid := range ids {
			if pid != req.PlotID {
				filtered = append(filtered, pid)
			}
		}
		ids = filtered
	}

	raw, _ := json.Marshal(ids)
	user.SavedPlots = datatypes.JSON(raw)
	if err := storage.DB.Save(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(&user)
}

// SearchUsers allows searching users by name or username (auth required).
// Private profiles only surface id/username.
func SearchUsers(ctx iris.Context) {
	q := ctx.URLParamDefault("q", "")
	limit := ctx.URLParamIntDefault("limit", 20)
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	if len(q) < 1 {
		ctx.JSON(iris.Map{"users": []interface{}{}})
		return
	}
	var users []models.User
	search := "%" + q + "%"
	storage.DB.Limit(limit).
		Where("lower(first_name) LIKE lower(?) OR lower(last_name) LIKE lower(?) OR lower(username) LIKE lower(?)", search, search, search).
		Select("id, first_name, last_name, username, avatar_url, profile_visibility, level").
		Find(&users)
	ctx.JSON(iris.Map{"users": users})
}

// DeleteAccount is the explicit account-reset action, the only path that
// removes a user row.
func DeleteAccount(ctx iris.Context) {
	claims := jsonWT.Get(ctx).(*utils.AccessToken)

	if err := services.EraseAccount(storage.DB, claims.ID); err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"deleted": true})
}
