package model

type Branch struct {
	DTO
	Name        string  `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Slug        string  `gorm:"size:150;uniqueIndex" json:"slug"`
	Address     string  `gorm:"size:255;not null" json:"address"`
	City        string  `gorm:"size:100;not null;index" json:"city"`
	PhoneNumber *string `gorm:"size:30" json:"phoneNumber"`
	Active      bool    `gorm:"not null;default:true" json:"active"`
	Halls       []Hall  `gorm:"foreignKey:BranchId" json:"halls,omitempty"`
}

type CreateBranchInput struct {
	Name        string  `json:"name" validate:"required,max=150"`
	Address     string  `json:"address" validate:"required,max=255"`
	City        string  `json:"city" validate:"required,max=100"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
}

type EditBranchInput struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=150"`
	Address     *string `json:"address" validate:"omitempty,min=1,max=255"`
	City        *string `json:"city" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=30"`
	Active      *bool   `json:"active"`
}

type FilterBranch struct {
	Pagination
	City   string `query:"city" json:"city"`
	Search string `query:"search" json:"search"`
}
