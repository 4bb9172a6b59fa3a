// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package quote

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is deliberately loose: the service re-validates, the client
// only catches obvious typos before a request is built.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// FieldError describes one invalid field, addressed the way the form lays
// it out ("client.name", "items[2].qty") so it can be surfaced inline.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is the full set of violations found in one pass.
type ValidationErrors []FieldError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the first error for the given field path, if any.
func (e ValidationErrors) ByField(field string) (FieldError, bool) {
	for _, fe := range e {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Validate checks a request against the client-side rules. It returns nil
// when the request may be submitted, otherwise every violation found.
// These checks run in the same event turn as the submit action; a failing
// request never reaches the network.
func Validate(req Request) error {
	var errs ValidationErrors

	if strings.TrimSpace(req.Client.Name) == "" {
		errs = append(errs, FieldError{"client.name", "client name is required"})
	}
	contact := strings.TrimSpace(req.Client.Contact)
	switch {
	case contact == "":
		errs = append(errs, FieldError{"client.contact", "contact email is required"})
	case !emailPattern.MatchString(contact):
		errs = append(errs, FieldError{"client.contact", "contact must be an email address"})
	}
	if req.Client.Lang != LangEnglish && req.Client.Lang != LangArabic {
		errs = append(errs, FieldError{"client.lang", "language must be en or ar"})
	}

	validCurrency := false
	for _, c := range Currencies {
		if req.Currency == c {
			validCurrency = true
			break
		}
	}
	if !validCurrency {
		errs = append(errs, FieldError{"currency", "currency must be SAR, USD or EUR"})
	}

	if len(req.Items) == 0 {
		errs = append(errs, FieldError{"items", "at least one item is required"})
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.SKU) == "" {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].sku", i), "SKU is required"})
		}
		if item.Qty < 1 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].qty", i), "quantity must be at least 1"})
		}
		if item.UnitCost < 0 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].unit_cost", i), "unit cost cannot be negative"})
		}
		if item.MarginPct < 0 || item.MarginPct > 100 {
			errs = append(errs, FieldError{fmt.Sprintf("items[%d].margin_pct", i), "margin must be between 0 and 100"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
