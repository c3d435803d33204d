// Copyright (c) 2026 Funtush. All rights reserved.

/*
Package convert provides strict conversions for loosely typed input such as
query strings and JSON values that may arrive as numbers or numeric strings.

Unlike strconv, the helpers trim whitespace and reject NaN and infinities so
callers can tell malformed input apart from a real zero.
*/
package convert

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToFloat64 parses a finite decimal number.
func ToFloat64(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("convert: %q is not a number", raw)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("convert: %q is not a finite number", raw)
	}
	return value, nil
}

// ToInt parses a whole number. Decimal input with a fractional part is rejected.
func ToInt(raw string) (int, error) {
	value, err := ToFloat64(raw)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, fmt.Errorf("convert: %q is not a whole number", raw)
	}
	return int(value), nil
}

// NumberToFloat64 converts a decoded [json.Number], which accepts both JSON
// numbers and quoted numeric strings.
func NumberToFloat64(number json.Number) (float64, error) {
	return ToFloat64(number.String())
}

// NumberToInt is [NumberToFloat64] for whole numbers.
func NumberToInt(number json.Number) (int, error) {
	return ToInt(number.String())
}
