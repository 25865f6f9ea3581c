// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package postgis

import (
	"fmt"
	"strings"

	"github.com/sapcc/pgextras/internal/errors"
)

// SRID identifies a spatial reference system.
type SRID int

const (
	SRIDWGS84       SRID = 4326
	SRIDWebMercator SRID = 3857
)

// GeometryType is a GeoJSON geometry type name. PostGIS accepts the same
// names (case-insensitive) as type modifiers.
type GeometryType string

const (
	TypePoint              GeometryType = "Point"
	TypeMultiPoint         GeometryType = "MultiPoint"
	TypeLineString         GeometryType = "LineString"
	TypeMultiLineString    GeometryType = "MultiLineString"
	TypePolygon            GeometryType = "Polygon"
	TypeMultiPolygon       GeometryType = "MultiPolygon"
	TypeGeometryCollection GeometryType = "GeometryCollection"

	// typeGeneric is the type modifier used when only dimensions or an
	// SRID are constrained.
	typeGeneric GeometryType = "Geometry"
)

var geometryTypes = []GeometryType{
	TypePoint,
	TypeMultiPoint,
	TypeLineString,
	TypeMultiLineString,
	TypePolygon,
	TypeMultiPolygon,
	TypeGeometryCollection,
}

// ParseGeometryType resolves a type name case-insensitively.
func ParseGeometryType(s string) (GeometryType, error) {
	for _, t := range geometryTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", errors.ErrUnknownGeometryType, s)
}

// Kind selects the PostGIS base type of a column.
type Kind string

const (
	KindGeometry  Kind = "geometry"
	KindGeography Kind = "geography"
)

// DefaultSRID is the reprojection target used when a column has no SRID.
// Geography only supports geodetic systems, so it falls back to WGS84.
func (k Kind) DefaultSRID() SRID {
	if k == KindGeography {
		return SRIDWGS84
	}
	return SRIDWebMercator
}

// ParseKind resolves "geometry" or "geography".
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case KindGeometry:
		return KindGeometry, nil
	case KindGeography:
		return KindGeography, nil
	}
	return "", fmt.Errorf("%w: %q", errors.ErrUnknownKind, s)
}
