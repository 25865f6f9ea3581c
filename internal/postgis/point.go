// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package postgis

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"

	"github.com/sapcc/pgextras/internal/errors"
)

var pointRegex = regexp.MustCompile(`(?i)^\s*POINT\s*(Z?)(M?)\s*\(\s*([^()]*?)\s*\)\s*$`)

// PointOptions lists the dimensions a point literal must carry.
type PointOptions struct {
	Z bool
	M bool
}

// ParsePoint parses a WKT point literal such as POINT(1 2) or POINTZ(1,2,3).
// Columns read GeoJSON through Column.FromDriver; this parser is kept for
// WKT input.
func ParsePoint(value string, opts PointOptions) (*geom.Point, error) {
	matches := pointRegex.FindStringSubmatch(value)
	if matches == nil {
		return nil, fmt.Errorf("%w: point geometry value (%s)", errors.ErrPatternMismatch, value)
	}
	hasZ, hasM := matches[1] != "", matches[2] != ""
	if (opts.Z && !hasZ) || (opts.M && !hasM) {
		return nil, fmt.Errorf("%w: point column expects z=%t m=%t, value has z=%t m=%t",
			errors.ErrMissingDimension, opts.Z, opts.M, hasZ, hasM)
	}

	layout := geom.XY
	switch {
	case hasZ && hasM:
		layout = geom.XYZM
	case hasZ:
		layout = geom.XYZ
	case hasM:
		layout = geom.XYM
	}

	fields := strings.FieldsFunc(matches[3], func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) != layout.Stride() {
		return nil, fmt.Errorf("%w: point geometry value (%s) has %d coordinates, expected %d",
			errors.ErrPatternMismatch, value, len(fields), layout.Stride())
	}

	coords := make([]float64, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: point geometry value (%s): %w", errors.ErrPatternMismatch, value, err)
		}
		coords[i] = f
	}
	return geom.NewPointFlat(layout, coords), nil
}
