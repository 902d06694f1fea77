// Package render draws printable tickets.
package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Output carries a fixed creation date so the same ticket always renders
// to the same bytes.
var stamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// TicketRenderer renders one A5 landscape page per ticket.
type TicketRenderer struct{}

func NewTicketRenderer() *TicketRenderer { return &TicketRenderer{} }

func (r *TicketRenderer) RenderTicketPDF(doc model.TicketDocument) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A5", "")
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(fmt.Sprintf("Ticket %d", doc.TicketID), true)
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	w, _ := pdf.GetPageSize()
	inner := w - 16

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(inner, 8, tr(doc.EventName), "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(inner, 6, doc.EventStartsAt.UTC().Format("Mon 02 Jan 2006, 15:04 MST"), "", 1, "L", false, 0, "")
	if doc.EventLocation != "" {
		pdf.CellFormat(inner, 6, tr(doc.EventLocation), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetDrawColor(120, 120, 120)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	y := pdf.GetY()
	pdf.Line(8, y, w-8, y)
	pdf.SetDashPattern(nil, 0)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(inner, 7, tr(doc.HolderName), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(inner, 6, tr(doc.TicketTypeName), "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Courier", "B", 16)
	pdf.CellFormat(inner, 9, fmt.Sprintf("No. %08d", doc.TicketID), "1", 1, "C", false, 0, "")

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render ticket %d: %w", doc.TicketID, err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render ticket %d: %w", doc.TicketID, err)
	}
	return buf.Bytes(), nil
}
