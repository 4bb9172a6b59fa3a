// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small formatting and string helpers shared by the
// rfq-console UI and export packages.
package util
