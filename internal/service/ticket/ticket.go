package ticket

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/phpdave11/gofpdf"
	"github.com/travelswift/booking-system/internal/domain/models"
	"github.com/travelswift/booking-system/internal/domain/types"
	"github.com/travelswift/booking-system/pkg/logger"
	wrap "github.com/travelswift/booking-system/pkg/logger/wrapper"
)

// Renderer produces the downloadable e-ticket for a booking.
type Renderer struct {
	log logger.Logger
}

func NewRenderer(log logger.Logger) *Renderer {
	return &Renderer{log: log}
}

// Render builds the e-ticket PDF for a confirmed booking, returning
// the document bytes and a download filename.
func (r *Renderer) Render(ctx context.Context, user *models.UserProfile, booking models.Booking) ([]byte, string, error) {
	ctx = wrap.WithAction(ctx, "render_eticket")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("E-Ticket", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "E-TICKET")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Traveler    : %s", safe(user.Name, "-")),
		fmt.Sprintf("Phone       : %s", safe(user.Phone, "-")),
		fmt.Sprintf("Service     : %s", serviceLabel(booking.Kind)),
		fmt.Sprintf("Route       : %s -> %s", safe(booking.Origin, "-"), safe(booking.Destination, "-")),
		fmt.Sprintf("Travel Date : %s", booking.Date.Format(models.DateLayout)),
		fmt.Sprintf("Details     : %s", safe(booking.Details, "-")),
		fmt.Sprintf("Fare        : %s", formatRupees(booking.Fare)),
		fmt.Sprintf("Booking ID  : %s", booking.ID.String()),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Note: this e-ticket is valid for one traveler. Please present it at departure.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", wrap.Error(ctx, err)
	}

	filename := fmt.Sprintf("ETICKET_%s.pdf", safeFilenamePart(booking.ID.String()))

	r.log.Info(ctx, "e-ticket rendered",
		"booking_id", booking.ID.String(),
		"bytes", buf.Len(),
	)

	return buf.Bytes(), filename, nil
}

func serviceLabel(kind types.ServiceKind) string {
	switch kind {
	case types.RideKind:
		return "Cab"
	case types.TransitKind:
		return "Bus"
	default:
		return string(kind)
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func formatRupees(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}
