// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package rag

import "strings"

// QueryRequest is the body of POST /rag/query. Query is sent trimmed.
type QueryRequest struct {
	Query    string `json:"query"`
	Language string `json:"language"` // "en" or "ar"
}

// NewQueryRequest builds a request with the query trimmed the way the
// service expects it.
func NewQueryRequest(query, language string) QueryRequest {
	return QueryRequest{Query: strings.TrimSpace(query), Language: language}
}

// QueryResult is the service's answer to a knowledge-base query.
type QueryResult struct {
	Answer         string   `json:"answer"`
	Confidence     float64  `json:"confidence"` // 0-100
	Sources        []string `json:"sources"`
	ResponseTime   int64    `json:"response_time"`   // milliseconds
	ProcessingTime int64    `json:"processing_time"` // milliseconds
}

// IsRTL reports whether answers for the given language render
// right-to-left. This is a pure function of the language field, never of
// the answer text: an English answer to an Arabic query still lays out
// right-to-left, matching the service's localization contract.
func IsRTL(language string) bool {
	return language == "ar"
}
