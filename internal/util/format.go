// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats numbers with digit grouping ("5,270.40"). The services
// quote in SAR/USD/EUR but always send English-locale numerics, so the
// printer locale is fixed rather than following the client language.
var printer = message.NewPrinter(language.English)

// FormatMoney renders an amount with its ISO 4217 currency code, e.g.
// "SAR 5,270.40". Codes that fail ISO parsing are rendered verbatim
// without grouping; the amount is never dropped.
func FormatMoney(amount float64, code string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%s %.2f", code, amount)
	}
	return printer.Sprintf("%v %.2f", unit, amount)
}

// FormatPercent renders a percentage with up to one decimal, trimming a
// trailing ".0" ("20%", "12.5%").
func FormatPercent(pct float64) string {
	s := fmt.Sprintf("%.1f", pct)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		s = s[:len(s)-2]
	}
	return s + "%"
}

// FormatMillis renders a millisecond count the way the services report
// timings: "637ms" under a second, "1.2s" above.
func FormatMillis(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%.1fs", float64(ms)/1000.0)
}

// FormatTimestamp formats a wall-clock time for on-screen display.
func FormatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
