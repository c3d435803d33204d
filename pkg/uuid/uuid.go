// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package uuid provides time-ordered unique identifiers for the platform.

It wraps google/uuid to generate Version 7 values, used for every movie,
category and user id regardless of the configured store.

Advantages:

  - Sortable: Naturally ordered by creation time (millisecond precision).
  - Portable: The same string id works as a Postgres uuid and a Mongo _id.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// Valid reports whether value parses as a UUID of any version.
func Valid(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}
