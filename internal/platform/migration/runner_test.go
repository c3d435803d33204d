// Copyright (c) 2026 Funtush. All rights reserved.

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestConvertToPgx5DSN rewrites libpq URL schemes for the pgx5 driver.
*/
func TestConvertToPgx5DSN(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/funtush", convertToPgx5DSN("postgres://u:p@db:5432/funtush"))
	assert.Equal(t, "pgx5://db/funtush", convertToPgx5DSN("postgresql://db/funtush"))
	assert.Equal(t, "pgx5://db/funtush", convertToPgx5DSN("pgx5://db/funtush"))
	assert.Equal(t, "host=db dbname=funtush", convertToPgx5DSN("host=db dbname=funtush"))
}
