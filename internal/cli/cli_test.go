// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sapcc/pgextras/internal/config"
	"github.com/sapcc/pgextras/internal/db"
	"github.com/sapcc/pgextras/internal/errors"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	old := Output
	Output = buf
	t.Cleanup(func() { Output = old })
	return buf
}

func withConfig(t *testing.T, cfg config.PgExtras) {
	t.Helper()
	old := config.Global
	config.Global = cfg
	t.Cleanup(func() { config.Global = old })
}

func withFormat(t *testing.T, format string) {
	t.Helper()
	old := formatters.Format
	formatters.Format = format
	t.Cleanup(func() { formatters.Format = old })
}

func TestRenderColumn(t *testing.T) {
	withConfig(t, config.PgExtras{Postgis: config.Postgis{DefaultSRID: 3857}})

	cases := []struct {
		cmd  RenderColumn
		want string
	}{
		{RenderColumn{Kind: "geometry", Type: "point", SRID: 4326}, `"location" geometry(Point,4326)`},
		{RenderColumn{Kind: "geometry"}, `"location" geometry(Geometry,3857)`},
		{RenderColumn{Kind: "geography", Type: "Polygon", Z: true, SRID: 4326, Render: "datatype"}, `geography(PolygonZ,4326)`},
		{RenderColumn{Kind: "geography", Render: "select"}, `st_asgeojson("location") AS "location"`},
	}
	for _, c := range cases {
		buf := captureOutput(t)
		c.cmd.Args.Name = "location"
		require.NoError(t, c.cmd.Execute(nil))
		assert.Equal(t, c.want+"\n", buf.String())
	}
}

func TestRenderColumnSchema(t *testing.T) {
	withConfig(t, config.PgExtras{Postgis: config.Postgis{Schema: "gis"}})
	buf := captureOutput(t)

	cmd := RenderColumn{Kind: "geometry", Type: "LineString", M: true}
	cmd.Args.Name = "track"
	require.NoError(t, cmd.Execute(nil))
	assert.Equal(t, `"track" "gis".geometry(LineStringM)`+"\n", buf.String())
}

func TestRenderColumnInvalid(t *testing.T) {
	withConfig(t, config.PgExtras{})
	captureOutput(t)

	cmd := RenderColumn{Kind: "raster"}
	assert.ErrorIs(t, cmd.Execute(nil), errors.ErrUnknownKind)

	cmd = RenderColumn{Kind: "geometry", Type: "circle"}
	assert.ErrorIs(t, cmd.Execute(nil), errors.ErrUnknownGeometryType)
}

func TestRenderNanoid(t *testing.T) {
	withConfig(t, config.PgExtras{Nanoid: config.Nanoid{Schema: "ids", DefaultLength: 12}})

	buf := captureOutput(t)
	require.NoError(t, (&RenderNanoid{}).Execute(nil))
	assert.Equal(t, `"ids"."nanoid"(12)`+"\n", buf.String())

	buf = captureOutput(t)
	require.NoError(t, (&RenderNanoid{Optimized: true, Length: 6, Alphabet: "0123456789"}).Execute(nil))
	assert.Equal(t, `"ids"."nanoid_optimized"(6,'0123456789',15,15)`+"\n", buf.String())

	captureOutput(t)
	assert.ErrorIs(t, (&RenderNanoid{Alphabet: "x"}).Execute(nil), errors.ErrInvalidAlphabet)
}

func TestRenderRegconfig(t *testing.T) {
	withConfig(t, config.PgExtras{FullText: config.FullText{
		Regconfig: map[string]string{"de": "german", "en": "english"},
	}})
	buf := captureOutput(t)

	require.NoError(t, (&RenderRegconfig{TagExpr: "lang"}).Execute(nil))
	assert.Equal(t,
		`(CASE WHEN lang = 'de' THEN 'german'::regconfig WHEN lang = 'en' THEN 'english'::regconfig END)`+"\n",
		buf.String())
}

func TestRenderRegconfigEmpty(t *testing.T) {
	withConfig(t, config.PgExtras{})
	captureOutput(t)

	assert.ErrorIs(t, (&RenderRegconfig{TagExpr: "lang"}).Execute(nil), errors.ErrEmptyRegconfig)
}

func TestWriteTable(t *testing.T) {
	capabilities := []db.Capability{
		{Kind: "extension", Name: "postgis", Installed: true, Version: "3.5.2"},
		{Kind: "function", Name: "nanoid", Installed: false},
	}

	withFormat(t, "csv")
	buf := captureOutput(t)
	require.NoError(t, WriteTable(capabilities))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "kind,name,installed,version", strings.ToLower(lines[0]))
	assert.Equal(t, "extension,postgis,true,3.5.2", lines[1])
	assert.Equal(t, "function,nanoid,false,", lines[2])

	withFormat(t, "markdown")
	buf = captureOutput(t)
	require.NoError(t, WriteTable(&capabilities))
	assert.Contains(t, buf.String(), "| extension | postgis | true | 3.5.2 |")

	assert.Error(t, WriteTable(capabilities[0]))
}

func TestRunCheck(t *testing.T) {
	withConfig(t, config.PgExtras{FullText: config.FullText{Regconfig: map[string]string{"en": "english"}}})
	withFormat(t, "csv")
	buf := captureOutput(t)

	dbMock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()
	dbMock.MatchExpectationsInOrder(false)

	rows := func() *pgxmock.Rows {
		return pgxmock.NewRows([]string{"kind", "name", "installed", "version"})
	}
	dbMock.ExpectQuery("pg_extension").
		WithArgs([]string{"pgcrypto", "postgis"}).
		WillReturnRows(rows().
			AddRow("extension", "pgcrypto", true, "1.3").
			AddRow("extension", "postgis", true, "3.5.2"))
	dbMock.ExpectQuery("pg_proc").
		WithArgs([]string{"nanoid", "nanoid_optimized"}, "").
		WillReturnRows(rows().
			AddRow("function", "nanoid", true, "").
			AddRow("function", "nanoid_optimized", false, ""))
	dbMock.ExpectQuery("pg_ts_config").
		WithArgs([]string{"english"}).
		WillReturnRows(rows().AddRow("regconfig", "english", true, ""))

	err = runCheck(context.Background(), dbMock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 5 capabilities missing")
	assert.Contains(t, buf.String(), "function,nanoid_optimized,false,")

	if err := dbMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestRunVersion(t *testing.T) {
	buf := captureOutput(t)
	assert.Equal(t, 0, Run([]string{"version"}))
	assert.Contains(t, buf.String(), "pgextras "+config.Version)
}
