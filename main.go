package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jartman86/growshare-sub005/routes"
	"github.com/jartman86/growshare-sub005/storage"
	"github.com/jartman86/growshare-sub005/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	// Only load .env in development
	if os.Getenv("RENDER") == "" {
		godotenv.Load()
	}

	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeMedia()

	app := iris.New()
	app.Validator = validator.New()

	// CORS configuration
	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	// JWT verifiers
	resetTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("EMAIL_TOKEN_SECRET")))
	resetTokenVerifier.WithDefaultBlocklist()
	resetTokenVerifierMiddleware := resetTokenVerifier.Verify(func() interface{} {
		return new(utils.ForgotPasswordToken)
	})

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	refreshTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("REFRESH_TOKEN_SECRET")))
	refreshTokenVerifier.WithDefaultBlocklist()
	refreshTokenVerifierMiddleware := refreshTokenVerifier.Verify(func() interface{} {
		return new(jwt.Claims)
	})

	refreshTokenVerifier.Extractors = append(refreshTokenVerifier.Extractors, func(ctx iris.Context) string {
		var tokenInput utils.RefreshTokenInput
		err := ctx.ReadJSON(&tokenInput)
		if err != nil {
			return ""
		}
		return tokenInput.RefreshToken
	})

	app.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{"status": "ok"})
	})

	user := app.Party("/api/user")
	{
		user.Post("/register", routes.Register)
		user.Post("/login", routes.Login)
		user.Post("/google", routes.GoogleLoginOrSignUp)
		user.Post("/apple", routes.AppleLoginOrSignUp)
		user.Post("/forgotpassword", routes.ForgotPassword)
		user.Post("/resetpassword", resetTokenVerifierMiddleware, routes.ResetPassword)
		user.Get("/search", accessTokenVerifierMiddleware, routes.SearchUsers)
		user.Get("/{id}/plots/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserSavedPlots)
		user.Patch("/{id}/plots/saved", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterUserSavedPlots)
		user.Patch("/{id}/pushtoken", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AlterPushToken)
		user.Patch("/{id}/settings/notifications", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.AllowsNotifications)
		user.Patch("/{id}/profile", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.UpdateUserProfile)
		user.Post("/roles", accessTokenVerifierMiddleware, routes.AddRole)
		user.Post("/verification", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.SubmitVerification)
		user.Get("/billing", accessTokenVerifierMiddleware, routes.GetBillingSnapshot)
		user.Get("/{id}", accessTokenVerifierMiddleware, routes.GetUser)
		user.Delete("/", accessTokenVerifierMiddleware, routes.DeleteAccount)
	}

	plot := app.Party("/api/plot")
	{
		plot.Post("/", accessTokenVerifierMiddleware, routes.CreatePlot)
		plot.Get("/{id}", routes.GetPlot)
		plot.Get("/userid/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetPlotsByUserID)
		plot.Patch("/update/{id}", accessTokenVerifierMiddleware, routes.UpdatePlot)
		plot.Delete("/{id}", accessTokenVerifierMiddleware, routes.DeletePlot)
		plot.Delete("/image", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeletePlotImage)
		plot.Post("/search", routes.GetPlotsByBoundingBox)
		plot.Get("/{id}/availability", routes.GetPlotAvailability)
	}

	plots := app.Party("/api/plots")
	{
		plots.Get("/search", routes.SearchPlots)
	}

	availability := app.Party("/api/availability")
	{
		availability.Get("/plot/{id}", routes.GetPlotAvailability)
		availability.Post("/blackout", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CreateBlackoutRange)
		availability.Get("/blackouts/{id}", routes.GetPlotBlackoutRanges)
		availability.Delete("/blackout/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.DeleteBlackoutRange)
	}

	reservation := app.Party("/api/reservation")
	{
		reservation.Post("/", accessTokenVerifierMiddleware, routes.CreateReservation)
		reservation.Get("/plot/{id}", routes.GetReservationsByPlotID)
		reservation.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetUserReservations)
		reservation.Get("/owner", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.GetOwnerReservations)
		reservation.Patch("/{id}/status", accessTokenVerifierMiddleware, routes.UpdateReservationStatus)
		reservation.Delete("/{id}", accessTokenVerifierMiddleware, utils.UserIDFromTokenMiddleware, routes.CancelReservation)
		reservation.Post("/expire-pending", routes.ExpirePendingReservations)
	}

	points := app.Party("/api/points", accessTokenVerifierMiddleware)
	{
		points.Get("/history", routes.GetMyPointsHistory)
		points.Get("/level", routes.GetMyLevel)
		points.Get("/activity", routes.GetMyActivity)
	}

	social := app.Party("/api/social", accessTokenVerifierMiddleware)
	{
		social.Post("/follow/{id:uint}", routes.FollowUser)
		social.Delete("/follow/{id:uint}", routes.UnfollowUser)
		social.Get("/followers/{id}", routes.GetFollowers)
		social.Get("/following/{id}", routes.GetFollowing)
		social.Get("/feed", routes.GetFollowingActivity)
	}

	guides := app.Party("/api/guides")
	{
		guides.Get("/", routes.ListPublishedGuides)
		guides.Get("/mine", accessTokenVerifierMiddleware, routes.GetMyGuides)
		guides.Post("/", accessTokenVerifierMiddleware, routes.CreateGuide)
		guides.Patch("/{id}", accessTokenVerifierMiddleware, routes.UpdateGuide)
		guides.Post("/{id}/publish", accessTokenVerifierMiddleware, routes.PublishGuide)
		guides.Post("/{id:uint}/vote", accessTokenVerifierMiddleware, routes.VoteGuide)
		guides.Delete("/{id}", accessTokenVerifierMiddleware, routes.DeleteGuide)
		guides.Get("/{id}", routes.GetGuide)
	}

	reviews := app.Party("/api/reviews")
	{
		reviews.Get("/plot/{plotId}", routes.ListPlotReviews)
		reviews.Post("/", accessTokenVerifierMiddleware, routes.CreateReview)
	}

	disputes := app.Party("/api/disputes", accessTokenVerifierMiddleware)
	{
		disputes.Post("/", routes.CreateDispute)
		disputes.Get("/", routes.GetMyDisputes)
		disputes.Get("/{id}", routes.GetDispute)
	}

	conversation := app.Party("/api/conversation")
	{
		conversation.Post("/", accessTokenVerifierMiddleware, routes.CreateConversation)
		conversation.Get("/{id}", accessTokenVerifierMiddleware, routes.GetConversationByID)
		conversation.Get("/user/{id}", accessTokenVerifierMiddleware, utils.UserIDMiddleware, routes.GetConversationsByUserID)
	}

	messages := app.Party("/api/messages")
	{
		messages.Post("/", accessTokenVerifierMiddleware, routes.CreateMessage)
		messages.Get("/", accessTokenVerifierMiddleware, routes.ListMessages)
		messages.Post("/state", accessTokenVerifierMiddleware, routes.SetMessageState)
	}

	notifications := app.Party("/api/notifications", accessTokenVerifierMiddleware)
	{
		notifications.Get("/", routes.ListMyNotifications)
		notifications.Patch("/{id}/read", routes.MarkNotificationRead)
		notifications.Post("/read-all", routes.MarkAllNotificationsRead)
	}

	feedback := app.Party("/api/feedback")
	{
		feedback.Post("/", accessTokenVerifierMiddleware, routes.CreateFeedback)
	}

	upload := app.Party("/api/upload")
	{
		upload.Post("/image", accessTokenVerifierMiddleware, routes.UploadImage)
	}

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/users", routes.AdminListUsers)
		admin.Get("/users/{id:uint}", routes.AdminGetUser)
		admin.Patch("/users/{id:uint}/role", utils.SuperAdminOnlyMiddleware, routes.AdminChangeUserRole)
		admin.Post("/users/{id:uint}/verify", routes.AdminVerifyUser)
		admin.Get("/plots", routes.AdminListPlots)
		admin.Get("/plots/{id:uint}", routes.AdminGetPlot)
		admin.Patch("/plots/{id:uint}/status", routes.AdminUpdatePlotStatus)
		admin.Post("/plots/{id:uint}/flag", routes.AdminFlagPlot)
		admin.Get("/reservations", routes.AdminListReservations)
		admin.Get("/reservations/{id:uint}", routes.AdminGetReservation)
		admin.Post("/reservations/{id:uint}/cancel", routes.AdminCancelReservation)
		admin.Patch("/reservations/{id:uint}/status", routes.AdminUpdateReservationStatus)
		admin.Get("/disputes", routes.AdminListDisputes)
		admin.Post("/disputes/{id:uint}/resolve", routes.AdminResolveDispute)
		admin.Get("/reviews", routes.AdminListReviews)
		admin.Patch("/reviews/{id:uint}/visibility", routes.AdminUpdateReviewVisibility)
		admin.Delete("/reviews/{id:uint}", routes.AdminDeleteReview)
		admin.Get("/feedback", routes.AdminListFeedback)
		admin.Get("/stats", routes.AdminStats)
		admin.Get("/activity", routes.AdminActivity)
		admin.Post("/export", routes.AdminCreateExport)
		admin.Get("/export/{id:string}", routes.AdminGetExport)
	}

	app.Post("/api/refresh", refreshTokenVerifierMiddleware, utils.RefreshToken)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}
	addr := "0.0.0.0:" + port

	fmt.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
