package view

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	DateLayout = time.DateOnly
	TimeLayout = "15:04"
)

var printer = message.NewPrinter(language.Indonesian)

var months = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatCurrency renders an amount in whole rupiah, e.g. "Rp 100.000".
func FormatCurrency(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	if rounded.IsNegative() {
		return "-Rp " + printer.Sprintf("%d", rounded.Neg().IntPart())
	}
	return "Rp " + printer.Sprintf("%d", rounded.IntPart())
}

// FormatNumber renders an amount with Indonesian digit grouping and no symbol.
func FormatNumber(amount decimal.Decimal) string {
	return printer.Sprintf("%d", amount.Round(0).IntPart())
}

func longDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), months[t.Month()-1], t.Year())
}

// FormatDate renders "2025-08-17" as "17 Agustus 2025". Unparseable input is
// returned unchanged and empty input renders as "-".
func FormatDate(date string) string {
	if strings.TrimSpace(date) == "" {
		return "-"
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return longDate(t)
}

// FormatDateTime renders a date and a time as "17 Agustus 2025 pukul 08.00".
func FormatDateTime(date, clock string) string {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		return "-"
	}
	t, err := time.Parse(DateLayout+" "+TimeLayout, date+" "+clock)
	if err != nil {
		return date + " " + clock
	}
	return fmt.Sprintf("%s pukul %02d.%02d", longDate(t), t.Hour(), t.Minute())
}

// ParseInstant combines a date and a time of day in loc.
func ParseInstant(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
}

// ValidDate reports whether s is a YYYY-MM-DD date.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidTime reports whether s is an HH:MM time of day.
func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// FuncMap exposes the formatters to page fragments.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"currency": FormatCurrency,
		"number":   FormatNumber,
		"date":     FormatDate,
		"datetime": FormatDateTime,
	}
}
