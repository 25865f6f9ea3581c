// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package postgis

import (
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sapcc/pgextras/internal/errors"
)

// Options constrain a geometry or geography column.
type Options struct {
	// Schema the PostGIS extension is installed in, empty for the search path.
	Schema string
	Type   GeometryType
	Z      bool
	M      bool
	SRID   SRID
}

// Column is a PostGIS column holding GeoJSON-shaped values.
//
// Reading goes through SelectSQL, which wraps the column in st_asgeojson and
// aliases it back to its own name. The query builder has no hook to alter how
// a custom type is selected, so this rewrite is a compatibility shim and
// breaks as soon as the column is selected any other way.
type Column struct {
	name string
	kind Kind
	opts Options
}

// NewGeometry returns a geometry column.
func NewGeometry(name string, opts Options) Column {
	return Column{name: name, kind: KindGeometry, opts: opts}
}

// NewGeography returns a geography column.
func NewGeography(name string, opts Options) Column {
	return Column{name: name, kind: KindGeography, opts: opts}
}

// New returns a column of the given kind.
func New(kind Kind, name string, opts Options) (Column, error) {
	if kind != KindGeometry && kind != KindGeography {
		return Column{}, fmt.Errorf("%w: %q", errors.ErrUnknownKind, kind)
	}
	return Column{name: name, kind: kind, opts: opts}, nil
}

func (c Column) ColumnName() string { return c.name }
func (c Column) Kind() Kind         { return c.kind }
func (c Column) Options() Options   { return c.opts }

// typeModifier returns e.g. PointZM, or the empty string if unconstrained.
func (c Column) typeModifier() string {
	var dims string
	if c.opts.Z {
		dims += "Z"
	}
	if c.opts.M {
		dims += "M"
	}
	base := c.opts.Type
	if base == "" && (dims != "" || c.opts.SRID != 0) {
		base = typeGeneric
	}
	return string(base) + dims
}

func (c Column) qualify(name string) string {
	if c.opts.Schema == "" {
		return name
	}
	return pgx.Identifier{c.opts.Schema}.Sanitize() + "." + name
}

// DataType returns the column type declaration, e.g. geometry(PointZ,4326).
func (c Column) DataType() string {
	modifier := c.typeModifier()
	if modifier == "" {
		return c.qualify(string(c.kind))
	}
	if c.opts.SRID != 0 {
		modifier = fmt.Sprintf("%s,%d", modifier, c.opts.SRID)
	}
	return fmt.Sprintf("%s(%s)", c.qualify(string(c.kind)), modifier)
}

// Definition returns the column definition for CREATE/ALTER TABLE.
func (c Column) Definition() string {
	return pgx.Identifier{c.name}.Sanitize() + " " + c.DataType()
}

// SRID returns the reprojection target of values written to c.
func (c Column) SRID() SRID {
	if c.opts.SRID != 0 {
		return c.opts.SRID
	}
	return c.kind.DefaultSRID()
}

// ToDriver renders value as a SQL expression. The GeoJSON text is bound as a
// query parameter.
func (c Column) ToDriver(value geom.T) (sq.Sqlizer, error) {
	if value == nil {
		return sq.Expr("NULL"), nil
	}
	data, err := geojson.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode %s %q: %w", c.kind, c.name, err)
	}
	expr := fmt.Sprintf("%s(%s(?::text),%d)::%s",
		c.qualify("st_transform"), c.qualify("st_geomfromgeojson"), c.SRID(), c.qualify(string(c.kind)))
	return sq.Expr(expr, string(data)), nil
}

// FromDriver parses the GeoJSON text produced by SelectSQL. SQL NULL is
// handled by Scanner, so JSON null and geometries without coordinates are
// parse errors.
func (c Column) FromDriver(value string) (geom.T, error) {
	var head struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
		Geometries  json.RawMessage `json:"geometries"`
	}
	if err := json.Unmarshal([]byte(value), &head); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrGeometryParse, err)
	}
	if head.Type == "" {
		return nil, fmt.Errorf("%w: %s %q has no type", errors.ErrGeometryParse, c.kind, c.name)
	}
	members, key := head.Coordinates, "coordinates"
	if head.Type == string(TypeGeometryCollection) {
		members, key = head.Geometries, "geometries"
	}
	if len(members) == 0 || string(members) == "null" {
		return nil, fmt.Errorf("%w: %s %s has no %s", errors.ErrGeometryParse, c.kind, head.Type, key)
	}
	if c.opts.Type != "" && head.Type != string(c.opts.Type) {
		return nil, fmt.Errorf("%w: expected %s type %s, got %s",
			errors.ErrGeometryTypeMismatch, c.kind, c.opts.Type, head.Type)
	}

	var g geom.T
	if err := geojson.Unmarshal([]byte(value), &g); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrGeometryParse, err)
	}
	return g, nil
}

// SelectSQL returns st_asgeojson("name") AS "name".
func (c Column) SelectSQL() string {
	ident := pgx.Identifier{c.name}.Sanitize()
	return fmt.Sprintf("%s(%s) AS %s", c.qualify("st_asgeojson"), ident, ident)
}
