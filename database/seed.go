package database

import (
	"cinemaverse/config"
	"cinemaverse/constants"
	"cinemaverse/logger"
	"cinemaverse/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var defaultGenres = []string{
	"Action", "Adventure", "Animation", "Comedy", "Crime", "Documentary",
	"Drama", "Family", "Fantasy", "Horror", "Mystery", "Romance",
	"Science Fiction", "Thriller",
}

// SeedData creates the genre list and the first admin account when missing.
func SeedData(db *gorm.DB) {
	for _, name := range defaultGenres {
		genre := model.Genre{Name: name}
		if err := db.Where(model.Genre{Name: name}).FirstOrCreate(&genre).Error; err != nil {
			logger.Log.WithError(err).WithField("genre", name).Warn("failed to seed genre")
		}
	}

	email := config.Config("ADMIN_EMAIL")
	password := config.Config("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.WithError(err).Warn("failed to hash admin password")
		return
	}
	admin := model.User{
		FirstName: "Cinema",
		LastName:  "Admin",
		Email:     email,
		Password:  string(hash),
		Role:      constants.ROLE_ADMIN,
		Active:    true,
	}
	if err := db.Where(model.User{Email: email}).FirstOrCreate(&admin).Error; err != nil {
		logger.Log.WithError(err).WithField("email", email).Warn("failed to seed admin account")
	}
}
