// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/sapcc/pgextras/internal/config"
	"github.com/sapcc/pgextras/internal/db"
	"github.com/sapcc/pgextras/internal/postgis"
)

var RenderOptions struct {
	Column    RenderColumn    `command:"column" description:"Render a geometry or geography column"`
	Nanoid    RenderNanoid    `command:"nanoid" description:"Render a nanoid call"`
	Regconfig RenderRegconfig `command:"regconfig" description:"Render the regconfig CASE expression"`
}

type RenderColumn struct {
	Kind   string `long:"kind" description:"Base type" choice:"geometry" choice:"geography" default:"geometry"`
	Type   string `long:"type" description:"Geometry type, e.g. Point"`
	Z      bool   `long:"z" description:"Column has a Z dimension"`
	M      bool   `long:"m" description:"Column has an M dimension"`
	SRID   int    `long:"srid" description:"SRID, defaults to postgis.default_srid"`
	Render string `long:"render" description:"What to render" choice:"definition" choice:"datatype" choice:"select" default:"definition"`
	Args   struct {
		Name string `positional-arg-name:"name" required:"true"`
	} `positional-args:"true"`
}

func (cmd *RenderColumn) Execute(_ []string) error {
	kind, err := postgis.ParseKind(cmd.Kind)
	if err != nil {
		return err
	}
	opts := postgis.Options{
		Schema: config.Global.Postgis.Schema,
		Z:      cmd.Z,
		M:      cmd.M,
		SRID:   postgis.SRID(cmd.SRID),
	}
	if opts.SRID == 0 {
		opts.SRID = postgis.SRID(config.Global.Postgis.DefaultSRID)
	}
	if cmd.Type != "" {
		if opts.Type, err = postgis.ParseGeometryType(cmd.Type); err != nil {
			return err
		}
	}

	column, err := postgis.New(kind, cmd.Args.Name, opts)
	if err != nil {
		return err
	}
	switch cmd.Render {
	case "datatype":
		_, err = fmt.Fprintln(Output, column.DataType())
	case "select":
		_, err = fmt.Fprintln(Output, column.SelectSQL())
	default:
		_, err = fmt.Fprintln(Output, column.Definition())
	}
	return err
}

type RenderNanoid struct {
	Optimized bool   `long:"optimized" description:"Call nanoid_optimized with a precomputed mask and step"`
	Length    int    `long:"length" description:"ID length, defaults to nanoid.default_length"`
	Alphabet  string `long:"alphabet" description:"Alphabet, defaults to the one installed by migrate"`
}

func (cmd *RenderNanoid) Execute(_ []string) error {
	gen := db.NewNanoidGenerator(db.NanoidConfig{
		Schema:        config.Global.Nanoid.Schema,
		DefaultLength: config.Global.Nanoid.DefaultLength,
	})
	sql, err := gen.SQL(db.NanoidOptions{Optimized: cmd.Optimized, Length: cmd.Length, Alphabet: cmd.Alphabet})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(Output, sql)
	return err
}

type RenderRegconfig struct {
	TagExpr string `long:"tag-expr" description:"SQL expression yielding the language tag" default:"language"`
}

func (cmd *RenderRegconfig) Execute(_ []string) error {
	mapping := db.RegconfigMappingFromMap(config.Global.FullText.Regconfig)
	sql, err := mapping.Literal(cmd.TagExpr)
	if err != nil {
		return fmt.Errorf("%w, set fulltext.regconfig", err)
	}
	_, err = fmt.Fprintln(Output, sql)
	return err
}

func init() {
	if _, err := Parser.AddCommand("render", "Render SQL",
		"Render SQL snippets for migrations and queries.", &RenderOptions); err != nil {
		panic(err)
	}
}
