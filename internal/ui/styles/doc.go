// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles defines the adaptive color palette and the Theme struct
// that every view renders through. Colors degrade automatically on
// terminals without truecolor support, and status states always carry an
// ASCII shape indicator alongside their color.
package styles
