package common

import (
	"fmt"
	"io"
	"strings"
	"time"

	"digital-stamp-go/internal/api"
	"digital-stamp-go/internal/models"
)

const (
	// Default separator widths
	DefaultWidth = 80
	WideWidth    = 100

	timeLayout = "2006-01-02 15:04:05 MST"
)

// PrintSeparator prints a separator line with the specified character and width
func PrintSeparator(w io.Writer, char string, width int) {
	fmt.Fprintln(w, strings.Repeat(char, width))
}

// PrintHeader prints a formatted header with title and separators
func PrintHeader(w io.Writer, title string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, title)
	PrintSeparator(w, "=", width)
}

// PrintFooter prints a formatted footer with message and separators
func PrintFooter(w io.Writer, message string, width int) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	fmt.Fprintln(w, message)
	fmt.Fprintln(w, strings.Repeat("=", width)+"\n")
}

// BoxPrefix returns the appropriate box-drawing prefix for list items
func BoxPrefix(isLast bool) string {
	if isLast {
		return "└  "
	}
	return "├  "
}

// BoxDetailPrefix returns the prefix for detail lines under list items
func BoxDetailPrefix(isLast bool) string {
	if isLast {
		return "   "
	}
	return "│  "
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// PrintStamp prints one collection entry.
func PrintStamp(w io.Writer, stamp models.Stamp, isLast bool) {
	detail := BoxDetailPrefix(isLast)
	fmt.Fprintf(w, "%s%s  %-20s %-8s %s\n", BoxPrefix(isLast), ShortId(stamp.Id), stamp.DisplayLabel(), stamp.Design, api.FaceValue(stamp))
	fmt.Fprintf(w, "%sid:      %s\n", detail, stamp.Id)
	fmt.Fprintf(w, "%scolor:   %s\n", detail, stamp.Color)
	fmt.Fprintf(w, "%simage:   %s\n", detail, stamp.ImageRef)
	fmt.Fprintf(w, "%screated: %s\n", detail, formatTime(stamp.CreatedAt))
}

// PrintStamps prints the collection or a placeholder when it is empty.
func PrintStamps(w io.Writer, stamps []models.Stamp) {
	if len(stamps) == 0 {
		fmt.Fprintln(w, "No stamps in your collection.")
		return
	}
	for i, stamp := range stamps {
		PrintStamp(w, stamp, i == len(stamps)-1)
	}
}

// PrintHistory prints mail sends then orders, each in insertion order.
func PrintHistory(w io.Writer, h api.History) {
	PrintHeader(w, fmt.Sprintf("MAIL HISTORY (%d)", len(h.Mail)), DefaultWidth)
	if len(h.Mail) == 0 {
		fmt.Fprintln(w, "No mail sent yet.")
	}
	for i, e := range h.Mail {
		isLast := i == len(h.Mail)-1
		detail := BoxDetailPrefix(isLast)
		fmt.Fprintf(w, "%sTo %s, %s\n", BoxPrefix(isLast), e.Record.Recipient, e.Record.Address)
		fmt.Fprintf(w, "%s%s\n", detail, e.StampCaption())
		fmt.Fprintf(w, "%ssent: %s\n", detail, formatTime(e.Record.SentAt))
	}

	PrintHeader(w, fmt.Sprintf("ORDERS (%d)", len(h.Orders)), DefaultWidth)
	if len(h.Orders) == 0 {
		fmt.Fprintln(w, "No orders placed yet.")
	}
	for i, e := range h.Orders {
		isLast := i == len(h.Orders)-1
		detail := BoxDetailPrefix(isLast)
		fmt.Fprintf(w, "%sOrder %s: %d x, total $%s\n", BoxPrefix(isLast), ShortId(e.Record.OrderId), e.Record.Quantity, e.Record.TotalCost.StringFixed(2))
		fmt.Fprintf(w, "%s%s\n", detail, e.StampCaption())
		fmt.Fprintf(w, "%sship to: %s\n", detail, e.Record.ShippingAddress)
		fmt.Fprintf(w, "%splaced:  %s\n", detail, formatTime(e.Record.PlacedAt))
	}
}

// PrintScans prints a numbered scan summary.
func PrintScans(w io.Writer, scans []models.ScanRecord) {
	PrintHeader(w, fmt.Sprintf("SCANNED BARCODES (%d)", len(scans)), DefaultWidth)
	for i, scan := range scans {
		fmt.Fprintf(w, "%3d. %s  %s\n", i+1, formatTime(scan.ScannedAt), scan.Barcode)
	}
}
