// Copyright (c) 2026 Funtush. All rights reserved.

// Package seed embeds the starter catalogue loaded by the import endpoints
// when they are called without a body.
package seed

import _ "embed"

// Movies is a JSON array of movie drafts.
//
//go:embed movies.json
var Movies []byte

// Categories is a JSON array of category drafts.
//
//go:embed categories.json
var Categories []byte
