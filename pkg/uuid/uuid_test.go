// Copyright (c) 2026 Funtush. All rights reserved.

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parthibdhar/Funtush-Server/pkg/uuid"
)

/*
TestNew verifies generated ids are valid and time ordered.
*/
func TestNew(t *testing.T) {
	first := uuid.New()
	second := uuid.New()

	assert.True(t, uuid.Valid(first))
	assert.NotEqual(t, first, second)
	assert.LessOrEqual(t, first[:13], second[:13])
	assert.False(t, uuid.Valid("not-a-uuid"))
}
