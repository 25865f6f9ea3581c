// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"reflect"

	sq "github.com/Masterminds/squirrel"
	"github.com/iancoleman/strcase"
	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx/reflectx"
)

// Field is a selectable column. postgis.Column implements it as well.
type Field interface {
	ColumnName() string
	// SelectSQL is the select-list entry yielding the column under its own name.
	SelectSQL() string
}

// Column is a plain column selected as is.
type Column string

func (c Column) ColumnName() string { return string(c) }
func (c Column) SelectSQL() string  { return pgx.Identifier{string(c)}.Sanitize() }

// Relation is anything a query can select from: a Table, View, Subquery or
// SelectResult.
type Relation interface {
	Fields() []Field
	NameOrAlias() string
	from(sq.SelectBuilder) sq.SelectBuilder
	isRelation()
}

type Table struct {
	Schema  string
	Name    string
	Columns []Field
}

func (t Table) Fields() []Field     { return t.Columns }
func (t Table) NameOrAlias() string { return t.Name }
func (t Table) from(q sq.SelectBuilder) sq.SelectBuilder {
	return q.From(qualifiedName(t.Schema, t.Name))
}
func (Table) isRelation() {}

type View struct {
	Schema         string
	Name           string
	SelectedFields []Field
}

func (v View) Fields() []Field     { return v.SelectedFields }
func (v View) NameOrAlias() string { return v.Name }
func (v View) from(q sq.SelectBuilder) sq.SelectBuilder {
	return q.From(qualifiedName(v.Schema, v.Name))
}
func (View) isRelation() {}

// Subquery is an aliased select used as a relation.
type Subquery struct {
	Alias     string
	Selection []Field
	Query     sq.SelectBuilder
}

func (s Subquery) Fields() []Field     { return s.Selection }
func (s Subquery) NameOrAlias() string { return s.Alias }
func (s Subquery) from(q sq.SelectBuilder) sq.SelectBuilder {
	return q.FromSelect(s.Query, pgx.Identifier{s.Alias}.Sanitize())
}
func (Subquery) isRelation() {}

// SelectResult describes the rows of a select over a single table.
type SelectResult struct {
	TableName      string
	SelectedFields []Field
}

func (s SelectResult) Fields() []Field     { return s.SelectedFields }
func (s SelectResult) NameOrAlias() string { return s.TableName }
func (s SelectResult) from(q sq.SelectBuilder) sq.SelectBuilder {
	return q.From(pgx.Identifier{s.TableName}.Sanitize())
}
func (SelectResult) isRelation() {}

// GetColumns returns the fields of r keyed by column name.
func GetColumns(r Relation) map[string]Field {
	fields := r.Fields()
	columns := make(map[string]Field, len(fields))
	for _, f := range fields {
		columns[f.ColumnName()] = f
	}
	return columns
}

// GetNameOrAlias returns the table or view name, or the subquery alias.
func GetNameOrAlias(r Relation) string {
	return r.NameOrAlias()
}

// SelectFrom selects every field of r, in order.
func SelectFrom(r Relation) sq.SelectBuilder {
	fields := r.Fields()
	columns := make([]string, 0, len(fields))
	for _, f := range fields {
		columns = append(columns, f.SelectSQL())
	}
	return r.from(Select(columns...))
}

func qualifiedName(schema, name string) string {
	if schema == "" {
		return pgx.Identifier{name}.Sanitize()
	}
	return pgx.Identifier{schema, name}.Sanitize()
}

var mapper = reflectx.NewMapperFunc("db", strcase.ToSnake)

// TableFor derives a Table from the exported fields of T. Column names come
// from `db` tags, falling back to snake_case field names. Overrides replace
// derived columns of the same name, e.g. with a postgis.Column.
func TableFor[T any](schema, name string, overrides ...Field) Table {
	byName := make(map[string]Field, len(overrides))
	for _, o := range overrides {
		byName[o.ColumnName()] = o
	}

	tm := mapper.TypeMap(reflect.TypeOf((*T)(nil)).Elem())
	var columns []Field
	var walk func(children []*reflectx.FieldInfo)
	walk = func(children []*reflectx.FieldInfo) {
		for _, fi := range children {
			if fi == nil || fi.Name == "-" {
				continue
			}
			if fi.Embedded {
				walk(fi.Children)
				continue
			}
			if o, ok := byName[fi.Name]; ok {
				columns = append(columns, o)
				continue
			}
			columns = append(columns, Column(fi.Name))
		}
	}
	walk(tm.Tree.Children)
	return Table{Schema: schema, Name: name, Columns: columns}
}
