// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capabilityRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"kind", "name", "installed", "version"})
}

func TestCheckInstallation(t *testing.T) {
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()
	dbMock.MatchExpectationsInOrder(false)

	dbMock.ExpectQuery(extensionsQuery).
		WithArgs([]string{"pgcrypto", "postgis"}).
		WillReturnRows(capabilityRows().
			AddRow("extension", "pgcrypto", true, "1.3").
			AddRow("extension", "postgis", true, "3.5.2"))
	dbMock.ExpectQuery(functionsQuery).
		WithArgs([]string{"nanoid", "nanoid_optimized"}, "extensions").
		WillReturnRows(capabilityRows().
			AddRow("function", "nanoid", true, "").
			AddRow("function", "nanoid_optimized", false, ""))
	dbMock.ExpectQuery(regconfigsQuery).
		WithArgs([]string{"english", "german"}).
		WillReturnRows(capabilityRows().
			AddRow("regconfig", "english", true, "").
			AddRow("regconfig", "german", true, ""))

	mapping := NewRegconfigMapping(LanguageTag{"en", RegconfigEnglish}, LanguageTag{"de", RegconfigGerman})
	capabilities, err := CheckInstallation(context.Background(), dbMock, "extensions", mapping)
	require.NoError(t, err)

	assert.Equal(t, []Capability{
		{"extension", "pgcrypto", true, "1.3"},
		{"extension", "postgis", true, "3.5.2"},
		{"function", "nanoid", true, ""},
		{"function", "nanoid_optimized", false, ""},
		{"regconfig", "english", true, ""},
		{"regconfig", "german", true, ""},
	}, capabilities)

	if err := dbMock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestCheckInstallationWithoutRegconfig(t *testing.T) {
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()
	dbMock.MatchExpectationsInOrder(false)

	dbMock.ExpectQuery(extensionsQuery).
		WithArgs([]string{"pgcrypto", "postgis"}).
		WillReturnRows(capabilityRows().AddRow("extension", "postgis", false, ""))
	dbMock.ExpectQuery(functionsQuery).
		WithArgs([]string{"nanoid", "nanoid_optimized"}, "").
		WillReturnRows(capabilityRows())

	capabilities, err := CheckInstallation(context.Background(), dbMock, "", RegconfigMapping{})
	require.NoError(t, err)
	assert.Equal(t, []Capability{{"extension", "postgis", false, ""}}, capabilities)
}

func TestCheckInstallationSharedRegconfig(t *testing.T) {
	dbMock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	if err != nil {
		t.Fatal(err)
	}
	defer dbMock.Close()
	dbMock.MatchExpectationsInOrder(false)

	dbMock.ExpectQuery(extensionsQuery).
		WithArgs([]string{"pgcrypto", "postgis"}).
		WillReturnRows(capabilityRows())
	dbMock.ExpectQuery(functionsQuery).
		WithArgs([]string{"nanoid", "nanoid_optimized"}, "").
		WillReturnRows(capabilityRows())
	dbMock.ExpectQuery(regconfigsQuery).
		WithArgs([]string{"english"}).
		WillReturnRows(capabilityRows().AddRow("regconfig", "english", true, ""))

	mapping := NewRegconfigMapping(LanguageTag{"en", RegconfigEnglish}, LanguageTag{"en-US", RegconfigEnglish})
	capabilities, err := CheckInstallation(context.Background(), dbMock, "", mapping)
	require.NoError(t, err)
	assert.Equal(t, []Capability{{"regconfig", "english", true, ""}}, capabilities)
}
