package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
)

const (
	exportListSheet = "Agendamentos"
	exportGridSheet = "Ocupação"
)

// Export renders bookings with dates in [from, to] as an .xlsx workbook: a flat
// list sheet and a slot-by-date occupancy grid.
func (s *Service) Export(ctx context.Context, from, to string) ([]byte, error) {
	bookings, err := s.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportListSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeListSheet(f, bookings); err != nil {
		return nil, err
	}
	if err := writeGridSheet(f, bookings); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeListSheet(f *excelize.File, bookings []*Booking) error {
	sorted := make([]*Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date < sorted[j].Date
		}
		return sorted[i].Time < sorted[j].Time
	})

	header := []interface{}{"Data", "Horário", "Serviço", "Nome", "Telefone", "Criado em"}
	if err := f.SetSheetRow(exportListSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if style, err := headerStyle(f); err == nil {
		f.SetCellStyle(exportListSheet, "A1", "F1", style)
	}

	for i, b := range sorted {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{b.Date, b.Time, string(b.Service), b.Name, b.Phone, b.CreatedAt.Format("2006-01-02 15:04")}
		if err := f.SetSheetRow(exportListSheet, cell, &row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	f.SetColWidth(exportListSheet, "A", "F", 18)
	return nil
}

// writeGridSheet puts slots in rows and dates in columns; a cell lists every
// booking holding that slot, so double bookings stay visible.
func writeGridSheet(f *excelize.File, bookings []*Booking) error {
	if _, err := f.NewSheet(exportGridSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	dates := make([]string, 0)
	seen := make(map[string]bool)
	cells := make(map[string]string)
	for _, b := range bookings {
		if !seen[b.Date] {
			seen[b.Date] = true
			dates = append(dates, b.Date)
		}
		key := b.Date + " " + b.Time
		label := fmt.Sprintf("%s (%s)", b.Name, b.Service)
		if cells[key] != "" {
			cells[key] += "\n" + label
		} else {
			cells[key] = label
		}
	}
	sort.Strings(dates)

	style, styleErr := headerStyle(f)

	for col, date := range dates {
		cell, _ := excelize.CoordinatesToCellName(col+2, 1)
		f.SetCellValue(exportGridSheet, cell, date)
		if styleErr == nil {
			f.SetCellStyle(exportGridSheet, cell, cell, style)
		}
	}

	for row, slot := range Slots {
		cell, _ := excelize.CoordinatesToCellName(1, row+2)
		f.SetCellValue(exportGridSheet, cell, slot)
		if styleErr == nil {
			f.SetCellStyle(exportGridSheet, cell, cell, style)
		}

		for col, date := range dates {
			if v := cells[date+" "+slot]; v != "" {
				cell, _ := excelize.CoordinatesToCellName(col+2, row+2)
				f.SetCellValue(exportGridSheet, cell, v)
			}
		}
	}

	return nil
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

// exportFilename names the download for the requested range
func exportFilename(from, to string) string {
	name := "agendamentos"
	if from != "" {
		name += "_" + from
	}
	if to != "" {
		name += "_" + to
	}
	return name + ".xlsx"
}
