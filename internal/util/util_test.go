// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// =============================================================================
// STRING HELPER TESTS
// =============================================================================

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"shorter than max", "hello", 10, "hello"},
		{"exactly max", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"zero max", "hello", 0, ""},
		{"tiny max skips ellipsis", "hello", 2, "he"},
		{"arabic runes not split", "ما هي منتجاتكم؟", 5, "ما..."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth_DoubleWidth(t *testing.T) {
	// CJK runes occupy two cells; width-based truncation must respect that.
	got := TruncateWidth("引用サービス", 7)
	if StringWidth(got) > 7 {
		t.Errorf("TruncateWidth result %q is %d cells wide, want <= 7", got, StringWidth(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("TruncateWidth result %q should end in ellipsis", got)
	}
}

func TestPadLeftWidth(t *testing.T) {
	if got := PadLeftWidth("ab", 5); got != "   ab" {
		t.Errorf("PadLeftWidth = %q, want %q", got, "   ab")
	}
	// Already wide enough: unchanged.
	if got := PadLeftWidth("abcdef", 5); got != "abcdef" {
		t.Errorf("PadLeftWidth should not truncate, got %q", got)
	}
}

func TestWrapWords(t *testing.T) {
	got := WrapWords("the quick brown fox jumps", 10)
	for _, line := range strings.Split(got, "\n") {
		if StringWidth(line) > 10 {
			t.Errorf("line %q exceeds wrap width", line)
		}
	}
	if strings.Join(strings.Fields(got), " ") != "the quick brown fox jumps" {
		t.Errorf("WrapWords lost words: %q", got)
	}
}

// =============================================================================
// FORMAT HELPER TESTS
// =============================================================================

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount float64
		code   string
		want   string
	}{
		{5270.4, "SAR", "SAR 5,270.40"},
		{360, "USD", "USD 360.00"},
		{0, "EUR", "EUR 0.00"},
		{12.5, "???", "??? 12.50"}, // unknown code falls back without grouping
	}

	for _, tc := range tests {
		if got := FormatMoney(tc.amount, tc.code); got != tc.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tc.amount, tc.code, got, tc.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{20, "20%"},
		{12.5, "12.5%"},
		{0, "0%"},
		{100, "100%"},
	}

	for _, tc := range tests {
		if got := FormatPercent(tc.pct); got != tc.want {
			t.Errorf("FormatPercent(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	if got := FormatMillis(637); got != "637ms" {
		t.Errorf("FormatMillis(637) = %q", got)
	}
	if got := FormatMillis(1240); got != "1.2s" {
		t.Errorf("FormatMillis(1240) = %q", got)
	}
}

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.txt")

	if err := AtomicWriteFile(path, []byte("quotation body"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "quotation body" {
		t.Errorf("content = %q", data)
	}

	// No temp droppings left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}
