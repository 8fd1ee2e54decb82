package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

// BookingWorkbook writes booking request reports as XLSX files into the
// exports directory.
type BookingWorkbook struct {
	path   string
	logger *zerolog.Logger
}

func NewBookingWorkbook(path string, logger *zerolog.Logger) *BookingWorkbook {
	return &BookingWorkbook{path: path, logger: logger}
}

// WriteBookings renders all requests into a timestamped workbook and returns
// the file path.
func (e *BookingWorkbook) WriteBookings(bookings []*models.BookingRequest) (string, error) {
	if err := os.MkdirAll(e.path, 0o755); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(bookingsSheet)
	if err != nil {
		return "", fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{
		"ID", "Card", "Unit Price", "Quantity", "Customer", "Phone", "Email",
		"Promo Code", "Discount %", "Final Price", "Status", "Created", "Message",
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(bookingsSheet, cell, header)
		_ = f.SetCellStyle(bookingsSheet, cell, cell, headerStyle)
	}

	for i, booking := range bookings {
		row := i + 2
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", row), booking.CardName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", row), booking.CardPrice)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", row), booking.Quantity)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", row), booking.FullName)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", row), booking.Phone)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", row), booking.Email)
		if booking.PromoCode != nil {
			_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("H%d", row), *booking.PromoCode)
		}
		if booking.DiscountPercent != nil {
			_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("I%d", row), *booking.DiscountPercent)
		}
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("J%d", row), booking.FinalPrice)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("K%d", row), booking.Status)
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("L%d", row), booking.CreatedAt.Format("02.01.2006 15:04"))
		_ = f.SetCellValue(bookingsSheet, fmt.Sprintf("M%d", row), booking.Message)

		if styleID, err := statusStyle(f, booking.Status); err == nil {
			cell := fmt.Sprintf("K%d", row)
			_ = f.SetCellStyle(bookingsSheet, cell, cell, styleID)
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 36)
	_ = f.SetColWidth(bookingsSheet, "B", "B", 25)
	_ = f.SetColWidth(bookingsSheet, "C", "D", 12)
	_ = f.SetColWidth(bookingsSheet, "E", "G", 22)
	_ = f.SetColWidth(bookingsSheet, "H", "K", 14)
	_ = f.SetColWidth(bookingsSheet, "L", "L", 18)
	_ = f.SetColWidth(bookingsSheet, "M", "M", 40)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_export_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	filePath := filepath.Join(e.path, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("save file: %w", err)
	}

	e.logger.Info().Str("file_path", filePath).Int("bookings", len(bookings)).Msg("Bookings workbook created")
	return filePath, nil
}

func statusStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.StatusConfirmed, models.StatusCompleted:
		color = "#C6EFCE"
	case models.StatusPending:
		color = "#FFEB9C"
	case models.StatusCancelled:
		color = "#FFC7CE"
	default:
		color = "#FFFFFF"
	}

	return f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}
