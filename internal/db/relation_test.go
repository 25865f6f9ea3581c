// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/pgextras/internal/postgis"
)

func TestGetNameOrAlias(t *testing.T) {
	assert.Equal(t, "places", GetNameOrAlias(Table{Schema: "app", Name: "places"}))
	assert.Equal(t, "place_view", GetNameOrAlias(View{Name: "place_view"}))
	assert.Equal(t, "p", GetNameOrAlias(Subquery{Alias: "p"}))
	assert.Equal(t, "places", GetNameOrAlias(SelectResult{TableName: "places"}))
}

func TestGetColumns(t *testing.T) {
	location := postgis.NewGeometry("location", postgis.Options{Type: postgis.TypePoint})
	table := Table{Name: "places", Columns: []Field{Column("id"), location}}

	columns := GetColumns(table)
	assert.Len(t, columns, 2)
	assert.Equal(t, Column("id"), columns["id"])
	assert.Equal(t, location, columns["location"])

	view := View{Name: "v", SelectedFields: []Field{Column("name")}}
	assert.Contains(t, GetColumns(view), "name")
}

func TestSelectFromTable(t *testing.T) {
	table := Table{
		Schema: "app",
		Name:   "places",
		Columns: []Field{
			Column("id"),
			postgis.NewGeometry("location", postgis.Options{Type: postgis.TypePoint}),
		},
	}

	sql, args, err := SelectFrom(table).Where("id = ?", 1).ToSql()
	require.NoError(t, err)
	assert.Equal(t, `SELECT "id", st_asgeojson("location") AS "location" FROM "app"."places" WHERE id = $1`, sql)
	assert.Equal(t, []any{1}, args)
}

func TestSelectFromSubquery(t *testing.T) {
	sub := Subquery{
		Alias:     "recent",
		Selection: []Field{Column("id")},
		Query:     Select("id").From("places").Where("created_at > ?", "2025-01-01"),
	}

	sql, args, err := SelectFrom(sub).Where("id <> ?", 3).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "id" FROM (SELECT id FROM places WHERE created_at > $1) AS "recent" WHERE id <> $2`, sql)
	assert.Equal(t, []any{"2025-01-01", 3}, args)
}

type base struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

type place struct {
	base
	DisplayName string
	Location    any `db:"location"`
	Internal    string `db:"-"`
	secret      string
}

func TestTableFor(t *testing.T) {
	location := postgis.NewGeography("location", postgis.Options{Type: postgis.TypePoint, SRID: postgis.SRIDWGS84})
	table := TableFor[place]("app", "places", location)

	assert.Equal(t, "places", table.Name)
	var names []string
	for _, f := range table.Columns {
		names = append(names, f.ColumnName())
	}
	assert.Equal(t, []string{"id", "created_at", "display_name", "location"}, names)
	assert.Equal(t, location, table.Columns[3])

	sql, _, err := SelectFrom(table).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		`SELECT "id", "created_at", "display_name", st_asgeojson("location") AS "location" FROM "app"."places"`, sql)
}
