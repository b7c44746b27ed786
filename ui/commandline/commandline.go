// Copyright 2025-2026 The fnplot Authors. SPDX-License-Identifier: Apache-2.0

// Package commandline contains the command line settings of fnplot and small formatting helpers.
package commandline
