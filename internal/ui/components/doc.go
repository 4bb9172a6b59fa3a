// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI pieces shared by the console's views:
// the notification channel and the in-flight spinner.
package components
