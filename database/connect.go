package database

import (
	"cinemaverse/config"
	"cinemaverse/logger"
	"cinemaverse/model"
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// GormConfig is shared by the application and test databases. Timestamps
// are written in UTC and driver errors are translated to gorm sentinels
// such as gorm.ErrDuplicatedKey.
func GormConfig(logLevel gormlogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	}
}

func ConnectDB(s config.Settings) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		s.DBHost, s.DBPort, s.DBUser, s.DBPassword, s.DBName, s.DBSSLMode)

	level := gormlogger.Warn
	if s.IsDev() {
		level = gormlogger.Info
	}
	db, err := gorm.Open(postgres.Open(dsn), GormConfig(level))
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	logger.Log.WithField("host", s.DBHost).Info("connection opened to database")

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Log.Info("database migrated")

	DB = db
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.PasswordResetToken{},
		&model.Genre{},
		&model.Movie{},
		&model.MovieCastMember{},
		&model.MovieImage{},
		&model.Branch{},
		&model.Hall{},
		&model.Seat{},
		&model.MovieShowTime{},
		&model.Booking{},
		&model.BookingSeat{},
		&model.BookingPayment{},
		&model.Ticket{},
		&model.Review{},
	)
	return errors.Wrap(err, "migrate database")
}

// Ping is used by the health endpoint.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
