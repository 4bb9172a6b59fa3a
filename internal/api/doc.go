// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api implements the HTTP client for the quotation and
// knowledge-base services.
//
// Every failure surfaces as a *RequestError carrying one of three kinds:
// ServerError (the service answered non-2xx), NoResponse (the request
// went out but nothing came back, including timeouts), or ClientError
// (the request could not be built or the response could not be parsed).
// Composers map these kinds straight onto user-facing notifications, so
// the classification here is part of the UI contract.
package api
