// Copyright (c) 2026 Funtush. All rights reserved.

package slice_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/parthibdhar/Funtush-Server/pkg/slice"
)

/*
TestSliceHelpers exercises Map, Filter, Reduce and IndexBy.
*/
func TestSliceHelpers(t *testing.T) {
	input := []int{1, 2, 3, 4}

	assert.Equal(t, []string{"1", "2", "3", "4"}, slice.Map(input, strconv.Itoa))
	assert.Equal(t, []int{2, 4}, slice.Filter(input, func(v int) bool { return v%2 == 0 }))
	assert.Equal(t, 10, slice.Reduce(input, 0, func(acc, v int) int { return acc + v }))
	assert.Nil(t, slice.Map[int, string](nil, strconv.Itoa))

	index := slice.IndexBy([]string{"a", "bb"}, func(v string) int { return len(v) })
	assert.Equal(t, map[int]string{1: "a", 2: "bb"}, index)
}
