// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package search drives a locate query across the configured databases.
//
// The driver opens each root's database in configuration order, streams
// its records through the query matcher and pushes hits to a caller
// supplied sink. Everything runs on the calling goroutine, so result
// ordering is the database order, which is the walker order.
package search
