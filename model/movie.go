package model

import "cinemaverse/utils"

type MovieStatus string

const (
	MovieComingSoon MovieStatus = "ComingSoon"
	MovieNowShowing MovieStatus = "NowShowing"
	MovieEnded      MovieStatus = "Ended"
)

type Genre struct {
	DTO
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

type Movie struct {
	DTO
	Title       string           `gorm:"size:255;not null;index" json:"title"`
	Slug        string           `gorm:"size:255;uniqueIndex" json:"slug"`
	Description string           `gorm:"type:text" json:"description"`
	Duration    int              `gorm:"not null" json:"duration"` // minutes
	Rating      float64          `gorm:"not null;default:0" json:"rating"`
	AgeRating   string           `gorm:"size:10;not null" json:"ageRating"`
	Language    string           `gorm:"size:50" json:"language"`
	ReleaseDate utils.CustomDate `gorm:"type:date;not null" json:"releaseDate"`
	Status      MovieStatus      `gorm:"size:20;not null;index" json:"status"`
	TrailerUrl  *string          `gorm:"size:500" json:"trailerUrl"`

	Genres []Genre           `gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE" json:"genres"`
	Cast   []MovieCastMember `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE" json:"cast,omitempty"`
	Images []MovieImage      `gorm:"foreignKey:MovieId;constraint:OnDelete:CASCADE" json:"images,omitempty"`

	AverageRating float64 `gorm:"-" json:"averageRating"`
	ReviewCount   int64   `gorm:"-" json:"reviewCount"`
}

type MovieCastMember struct {
	DTO
	MovieId       uint    `gorm:"not null;index" json:"movieId"`
	Name          string  `gorm:"size:255;not null" json:"name"`
	CharacterName *string `gorm:"size:255" json:"characterName"`
	ImageUrl      *string `gorm:"size:500" json:"imageUrl"`
	Order         int     `gorm:"column:display_order;not null;default:0" json:"order"`
	IsLead        bool    `gorm:"not null;default:false" json:"isLead"`
}

type MovieImage struct {
	DTO
	MovieId   uint    `gorm:"not null;index" json:"movieId"`
	Url       string  `gorm:"size:500;not null" json:"url"`
	PublicID  *string `gorm:"size:255" json:"publicId"`
	IsPrimary bool    `gorm:"not null;default:false" json:"isPrimary"`
}

type CreateMovieInput struct {
	Title       string           `json:"title" validate:"required,max=255"`
	Description string           `json:"description" validate:"max=5000"`
	Duration    int              `json:"duration" validate:"required,min=1,max=600"`
	Rating      float64          `json:"rating" validate:"min=0,max=10"`
	AgeRating   string           `json:"ageRating" validate:"required,oneof=G PG PG13 R NC17"`
	Language    string           `json:"language" validate:"max=50"`
	ReleaseDate utils.CustomDate `json:"releaseDate"`
	Status      MovieStatus      `json:"status" validate:"omitempty,oneof=ComingSoon NowShowing Ended"`
	TrailerUrl  *string          `json:"trailerUrl" validate:"omitempty,url"`
	GenreIds    []uint           `json:"genreIds" validate:"omitempty,dive,min=1"`
}

type EditMovieInput struct {
	Title       *string           `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string           `json:"description" validate:"omitempty,max=5000"`
	Duration    *int              `json:"duration" validate:"omitempty,min=1,max=600"`
	Rating      *float64          `json:"rating" validate:"omitempty,min=0,max=10"`
	AgeRating   *string           `json:"ageRating" validate:"omitempty,oneof=G PG PG13 R NC17"`
	Language    *string           `json:"language" validate:"omitempty,max=50"`
	ReleaseDate *utils.CustomDate `json:"releaseDate"`
	TrailerUrl  *string           `json:"trailerUrl" validate:"omitempty,url"`
	GenreIds    *[]uint           `json:"genreIds"`
}

type MovieStatusInput struct {
	Status MovieStatus `json:"status" validate:"required,oneof=ComingSoon NowShowing Ended"`
}

type FilterMovieInput struct {
	Pagination
	Search  string `query:"search" json:"search"`
	GenreId uint   `query:"genreId" json:"genreId"`
	Status  string `query:"status" json:"status" validate:"omitempty,oneof=ComingSoon NowShowing Ended"`
	SortBy  string `query:"sortBy" json:"sortBy" validate:"omitempty,oneof=title releaseDate rating createdAt"`
	Desc    bool   `query:"desc" json:"desc"`
}

type CastMemberInput struct {
	Name          string  `json:"name" validate:"required,max=255"`
	CharacterName *string `json:"characterName" validate:"omitempty,max=255"`
	ImageUrl      *string `json:"imageUrl" validate:"omitempty,url"`
	Order         int     `json:"order" validate:"min=0"`
	IsLead        bool    `json:"isLead"`
}

type MovieImageInput struct {
	Url       string `json:"url" validate:"required,url"`
	IsPrimary bool   `json:"isPrimary"`
}

type GenreInput struct {
	Name string `json:"name" validate:"required,max=100"`
}
