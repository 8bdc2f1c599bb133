package helper

import (
	"cinemaverse/model"
	"fmt"
)

type HallLayout struct {
	Rows        int
	SeatsPerRow int
}

func (l HallLayout) Capacity() int {
	return l.Rows * l.SeatsPerRow
}

var hallLayouts = map[model.HallType]HallLayout{
	model.HallStandard: {Rows: 10, SeatsPerRow: 12},
	model.HallVIP:      {Rows: 6, SeatsPerRow: 8},
	model.HallIMAX:     {Rows: 14, SeatsPerRow: 20},
	model.HallFourDX:   {Rows: 8, SeatsPerRow: 10},
}

func LayoutFor(t model.HallType) (HallLayout, bool) {
	l, ok := hallLayouts[t]
	return l, ok
}

// RowLetter maps a zero based row index to A..Z, then AA, AB and so on.
func RowLetter(i int) string {
	if i < 26 {
		return string(rune('A' + i))
	}
	return RowLetter(i/26-1) + string(rune('A'+i%26))
}

// GenerateSeats builds the seats of a hall row by row, labelled like C7.
func GenerateSeats(hallID uint, t model.HallType) ([]model.Seat, error) {
	layout, ok := LayoutFor(t)
	if !ok {
		return nil, fmt.Errorf("unknown hall type %q", t)
	}
	seats := make([]model.Seat, 0, layout.Capacity())
	for r := 0; r < layout.Rows; r++ {
		row := RowLetter(r)
		for n := 1; n <= layout.SeatsPerRow; n++ {
			seats = append(seats, model.Seat{
				HallId:    hallID,
				SeatLabel: fmt.Sprintf("%s%d", row, n),
				Row:       row,
				Number:    n,
				Active:    true,
			})
		}
	}
	return seats, nil
}
