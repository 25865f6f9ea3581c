// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"math"
	"reflect"

	"github.com/jackc/pgx/v5/pgtype"
)

// Range is a pair of bounds. Both bounds nil is the empty range.
type Range struct {
	Lower *float64
	Upper *float64
}

func (r Range) IsEmpty() bool {
	return r.Lower == nil && r.Upper == nil
}

// Numrange converts r for binding to a numrange/float8 range column.
func (r Range) Numrange() pgtype.Range[pgtype.Float8] {
	if r.IsEmpty() {
		return pgtype.Range[pgtype.Float8]{Valid: true, LowerType: pgtype.Empty, UpperType: pgtype.Empty}
	}
	return pgtype.Range[pgtype.Float8]{
		Lower:     pgtype.Float8{Float64: *r.Lower, Valid: true},
		Upper:     pgtype.Float8{Float64: *r.Upper, Valid: true},
		LowerType: pgtype.Inclusive,
		UpperType: pgtype.Inclusive,
		Valid:     true,
	}
}

type RangeOptions struct {
	Min *float64
	Max *float64
	// Unordered accepts pairs whose first element is greater than the second.
	Unordered bool
}

// IsRange reports whether v is a two-element slice or array of numbers, or
// of two nils, within the bounds of opts.
func IsRange(v any, opts RangeOptions) bool {
	_, ok := AsRange(v, opts)
	return ok
}

// AsRange is IsRange returning the validated Range.
func AsRange(v any, opts RangeOptions) (Range, bool) {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return Range{}, false
	}
	if rv.Len() != 2 {
		return Range{}, false
	}

	lower, lowerNull, ok := rangeBound(rv.Index(0))
	if !ok {
		return Range{}, false
	}
	upper, upperNull, ok := rangeBound(rv.Index(1))
	if !ok {
		return Range{}, false
	}
	if lowerNull && upperNull {
		// empty ranges are coalesced to null-bounded pairs
		return Range{}, true
	}
	if lowerNull || upperNull {
		return Range{}, false
	}

	if !opts.Unordered && lower > upper {
		return Range{}, false
	}
	if opts.Min != nil && math.Min(lower, upper) < *opts.Min {
		return Range{}, false
	}
	if opts.Max != nil && math.Max(lower, upper) > *opts.Max {
		return Range{}, false
	}
	return Range{Lower: &lower, Upper: &upper}, true
}

func rangeBound(v reflect.Value) (f float64, null, ok bool) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return 0, true, true
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), false, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), false, true
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return f, false, !math.IsNaN(f)
	}
	return 0, false, false
}
