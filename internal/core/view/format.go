package view

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatAmount renders v with thousands separators and two decimals,
// followed by the currency code: "12,500.00 MAD".
func FormatAmount(v float64, code string) string {
	s := printer.Sprintf("%.2f", v)
	if code == "" {
		return s
	}
	return s + " " + code
}

// FormatVolume abbreviates large figures: 1.50B, 2.25M, 3.00K, 999.00.
func FormatVolume(v float64) string {
	switch {
	case v >= 1e9:
		return fmt.Sprintf("%.2fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.2fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.2fK", v/1e3)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatMarketCap is FormatVolume with "N/A" for unknown or zero caps.
func FormatMarketCap(v *float64) string {
	if v == nil || *v == 0 {
		return "N/A"
	}
	return FormatVolume(*v)
}

// FormatCrypto renders a crypto quantity with eight decimals.
func FormatCrypto(v float64, symbol string) string {
	return fmt.Sprintf("%.8f %s", v, symbol)
}

// FormatDate renders t as "Jan 2, 2006 15:04", or "N/A" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006 15:04")
}
