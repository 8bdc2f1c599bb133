package model

type HallType string

const (
	HallStandard HallType = "Standard"
	HallVIP      HallType = "VIP"
	HallIMAX     HallType = "IMAX"
	HallFourDX   HallType = "FourDX"
)

type HallStatus string

const (
	HallAvailable   HallStatus = "Available"
	HallMaintenance HallStatus = "Maintenance"
	HallClosed      HallStatus = "Closed"
)

type Hall struct {
	DTO
	BranchId   uint       `gorm:"not null;uniqueIndex:idx_branch_hall_number" json:"branchId"`
	Branch     *Branch    `gorm:"foreignKey:BranchId" json:"branch,omitempty"`
	HallNumber int        `gorm:"not null;uniqueIndex:idx_branch_hall_number" json:"hallNumber"`
	HallType   HallType   `gorm:"size:20;not null" json:"hallType"`
	Capacity   int        `gorm:"not null" json:"capacity"`
	Status     HallStatus `gorm:"size:20;not null;default:Available" json:"status"`
	Seats      []Seat     `gorm:"foreignKey:HallId;constraint:OnDelete:CASCADE" json:"seats,omitempty"`
}

type CreateHallInput struct {
	BranchId   uint     `json:"branchId" validate:"required"`
	HallNumber int      `json:"hallNumber" validate:"required,min=1,max=999"`
	HallType   HallType `json:"hallType" validate:"required,oneof=Standard VIP IMAX FourDX"`
}

type EditHallInput struct {
	HallNumber *int        `json:"hallNumber" validate:"omitempty,min=1,max=999"`
	HallType   *HallType   `json:"hallType" validate:"omitempty,oneof=Standard VIP IMAX FourDX"`
	Status     *HallStatus `json:"status" validate:"omitempty,oneof=Available Maintenance Closed"`
}
