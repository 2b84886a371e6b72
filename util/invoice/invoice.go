// Package invoice renders booking receipts as PDF files.
package invoice

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"vehiclerental/model"

	"github.com/jung-kurt/gofpdf"
)

type Renderer interface {
	// Render writes the receipt for b to path.
	Render(b *model.Booking, path string) error
}

type pdfRenderer struct{}

func NewPDF() Renderer { return &pdfRenderer{} }

func (pdfRenderer) Render(b *model.Booking, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 20)
	doc.CellFormat(0, 12, "Booking Invoice", "", 1, "C", false, 0, "")
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 12)
	line := func(label, value string) {
		doc.CellFormat(0, 8, fmt.Sprintf("%s: %s", label, value), "", 1, "L", false, 0, "")
	}
	line("Booking ID", fmt.Sprintf("%d", b.ID))
	line("Username", b.Username)
	line("Email", b.Email)
	line("Vehicle Model", b.VehicleModel)
	line("Start Date", b.StartDate.Format(time.DateOnly))
	line("End Date", b.EndDate.Format(time.DateOnly))
	line("Total Price", fmt.Sprintf("%.2f", b.TotalAmount))

	return doc.OutputFileAndClose(path)
}

// Path derives the receipt location for a booking id.
func Path(dir string, bookingID int64) string {
	return filepath.Join(dir, fmt.Sprintf("invoice_%d.pdf", bookingID))
}
