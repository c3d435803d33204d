// Copyright (c) 2026 Funtush. All rights reserved.

package movie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

/*
TestMongoFilter quotes regex metacharacters in search terms.
*/
func TestMongoFilter(t *testing.T) {
	filter, err := mongoFilter([]Condition{
		{Field: FieldYear, Op: OpEq, Value: 2020},
		{Field: FieldName, Op: OpContains, Value: "a.b*"},
	})
	require.NoError(t, err)

	assert.Equal(t, bson.D{
		{Key: "year", Value: 2020},
		{Key: "name", Value: bson.D{{Key: "$regex", Value: `a\.b\*`}, {Key: "$options", Value: "i"}}},
	}, filter)
}

/*
TestMongoSort maps the id tiebreak to the document key.
*/
func TestMongoSort(t *testing.T) {
	assert.Equal(t, bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}, mongoSort(newestFirst))
}
