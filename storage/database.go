package storage

import (
	"log"
	"os"

	"github.com/jartman86/growshare-sub005/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func connectToDB() *gorm.DB {
	// Only load .env in development (when RENDER env var is not set)
	if os.Getenv("RENDER") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Println("Warning: Could not load .env file (this is normal in production)")
		}
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Panic("DB_CONNECTION_STRING environment variable is required")
	}

	db, dbError := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if dbError != nil {
		log.Panic("error connection to db: " + dbError.Error())
	}

	DB = db
	return db
}

// Migrate runs AutoMigrate for every model and installs the booking
// exclusion constraint.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.User{},
		&models.Plot{},
		&models.BlackoutRange{},
		&models.Reservation{},
		&models.PointsEvent{},
		&models.Activity{},
		&models.Follow{},
		&models.Guide{},
		&models.GuideVote{},
		&models.Review{},
		&models.Dispute{},
		&models.Conversation{},
		&models.Message{},
		&models.Notification{},
		&models.AuditLog{},
		&models.Feedback{},
	)

	installBookingExclusion(db)
}

// installBookingExclusion makes Postgres itself reject overlapping
// reservations on the same plot. The application-level availability check
// still runs first for a friendly 409, but two concurrent requests that both
// pass it cannot both commit: the loser gets SQLSTATE 23P01, which the
// booking service translates to a conflict error.
//
// daterange() is half-open [start, end), matching the lease convention, so
// back-to-back reservations that touch at a boundary are allowed.
func installBookingExclusion(db *gorm.DB) {
	stmts := []string{
		`CREATE EXTENSION IF NOT EXISTS btree_gist`,
		`ALTER TABLE reservations DROP CONSTRAINT IF EXISTS reservations_no_overlap`,
		`ALTER TABLE reservations ADD CONSTRAINT reservations_no_overlap
			EXCLUDE USING gist (
				plot_id WITH =,
				daterange(start_date::date, end_date::date) WITH &&
			)
			WHERE (status IN ('pending', 'approved', 'active') AND deleted_at IS NULL)`,
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			log.Printf("⚠️  booking exclusion constraint: %v", err)
		}
	}
}

func InitializeDB() *gorm.DB {
	db := connectToDB()
	Migrate(db)
	log.Println("🌱 Database connected and migrated")
	return db
}
