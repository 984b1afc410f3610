package booking

import (
	"time"
)

// DayState tags a calendar cell
type DayState string

const (
	DayEmpty  DayState = "empty" // padding before the 1st
	DayPast   DayState = "past"
	DayToday  DayState = "today"
	DayFuture DayState = "future"
)

// Weekdays are the column headers; weeks start on Sunday
var Weekdays = []string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// DayCell is one position of the month grid
type DayCell struct {
	Day        int      `json:"day,omitempty"`
	Date       string   `json:"date,omitempty"`
	State      DayState `json:"state"`
	Selectable bool     `json:"selectable"`
}

// Calendar is the month grid containing today
type Calendar struct {
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	Today    string    `json:"today"`
	Weekdays []string  `json:"weekdays"`
	Cells    []DayCell `json:"cells"`
}

// GenerateCalendar builds the grid for the month containing today. Leading
// empty cells align the 1st under its weekday. Dates before today are not
// selectable; today is selectable and tagged DayToday.
func GenerateCalendar(today time.Time) Calendar {
	year, month, day := today.Date()
	loc := today.Location()

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	lead := int(first.Weekday())

	cal := Calendar{
		Year:     year,
		Month:    int(month),
		Today:    today.Format(DateLayout),
		Weekdays: Weekdays,
		Cells:    make([]DayCell, 0, lead+daysInMonth),
	}

	for i := 0; i < lead; i++ {
		cal.Cells = append(cal.Cells, DayCell{State: DayEmpty})
	}

	for d := 1; d <= daysInMonth; d++ {
		cell := DayCell{
			Day:  d,
			Date: time.Date(year, month, d, 0, 0, 0, 0, loc).Format(DateLayout),
		}
		switch {
		case d < day:
			cell.State = DayPast
		case d == day:
			cell.State = DayToday
			cell.Selectable = true
		default:
			cell.State = DayFuture
			cell.Selectable = true
		}
		cal.Cells = append(cal.Cells, cell)
	}

	return cal
}

// Cell returns the cell for date, if the calendar has one
func (c Calendar) Cell(date string) (DayCell, bool) {
	for _, cell := range c.Cells {
		if cell.State != DayEmpty && cell.Date == date {
			return cell, true
		}
	}
	return DayCell{}, false
}

// Selectable reports whether date may be picked
func (c Calendar) Selectable(date string) bool {
	cell, ok := c.Cell(date)
	return ok && cell.Selectable
}
