package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fleet_board/internal/models"
)

var (
	// DB is the globally accessible database handle
	DB *gorm.DB
)

// InitDB initializes the database connection using environment variables,
// migrates the schema and seeds the fixed reference rows.
func InitDB() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	// Load environment variables (with defaults)
	host := GetEnv("DB_HOST", "localhost")
	port := GetEnv("DB_PORT", "5432")
	user := GetEnv("DB_USER", "postgres")
	password := GetEnv("DB_PASSWORD", "password")
	dbname := GetEnv("DB_NAME", "fleet")
	sslmode := GetEnv("DB_SSLMODE", "disable")
	timezone := GetEnv("DB_TIMEZONE", "UTC")

	// Build Data Source Name
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		host, user, password, dbname, port, sslmode, timezone,
	)

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{}, &models.Profile{},
		&models.VehicleType{}, &models.Location{},
		&models.VehicleStatus{}, &models.OperationalCategory{},
		&models.Vehicle{}, &models.MaintenanceLog{}, &models.TobReport{},
	)
	if err != nil {
		log.Fatalf("auto-migration failed: %v", err)
	}

	seedReferenceRows(db)

	// Assign to global
	DB = db
}

// seedReferenceRows inserts the lifecycle statuses and default readiness
// categories on an empty database. Admin-curated rows are never touched.
func seedReferenceRows(db *gorm.DB) {
	var n int64
	db.Model(&models.VehicleStatus{}).Count(&n)
	if n == 0 {
		db.Create(&[]models.VehicleStatus{
			{Name: models.StatusActive, SortOrder: 1},
			{Name: models.StatusInactive, SortOrder: 2},
		})
	}
	db.Model(&models.OperationalCategory{}).Count(&n)
	if n == 0 {
		db.Create(&[]models.OperationalCategory{
			{Name: "Fully Mission Capable", SortOrder: 1},
			{Name: "Degraded", SortOrder: 2},
			{Name: "Non-Mission Capable", SortOrder: 3},
		})
	}
}

// GetEnv reads an environment variable or returns the provided default
func GetEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

// GetDB returns the initialized DB handle
func GetDB() *gorm.DB {
	return DB
}
