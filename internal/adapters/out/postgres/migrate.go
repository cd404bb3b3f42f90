package postgres

import (
	"fmt"

	"parcels/internal/adapters/out/postgres/parcelrepo"
	"parcels/internal/adapters/out/postgres/parceltyperepo"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Config holds the connection settings of the parcel database.
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the settings as a libpq keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Open connects to the database described by cfg.
func Open(cfg Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{}
	}
	db, err := gorm.Open(postgresdriver.Open(cfg.DSN()), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the parcel_types and parcels tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&parceltyperepo.ParcelTypeDTO{}, &parcelrepo.ParcelDTO{}); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
