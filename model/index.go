package model

import "time"

type TokenData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenClaim struct {
	UserId uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type ArrayId struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

type Pagination struct {
	Limit *int `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	Page  *int `query:"page" json:"page" validate:"omitempty,min=1"`
}

// Paged wraps a page of rows with the pagination it was queried with.
func Paged[T any](rows []T, p Pagination, total int64) ResponseCustom {
	if rows == nil {
		rows = []T{}
	}
	return ResponseCustom{Rows: rows, Limit: p.Limit, Page: p.Page, TotalCount: total}
}
