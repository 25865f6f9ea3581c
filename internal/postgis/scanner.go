// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package postgis

import (
	"database/sql"
	"fmt"

	"github.com/twpayne/go-geom"

	"github.com/sapcc/pgextras/internal/errors"
)

type scanner struct {
	column Column
	dst    *geom.T
}

// Scanner returns a scan target decoding the column's GeoJSON into dst.
// SQL NULL stores nil.
func (c Column) Scanner(dst *geom.T) sql.Scanner {
	return &scanner{column: c, dst: dst}
}

func (s *scanner) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case nil:
		*s.dst = nil
		return nil
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("%w: cannot scan %T into %s %q", errors.ErrGeometryParse, src, s.column.kind, s.column.name)
	}

	g, err := s.column.FromDriver(text)
	if err != nil {
		return err
	}
	*s.dst = g
	return nil
}
