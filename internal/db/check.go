// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/sapcc/pgextras/internal"
)

// Capability is the result of probing one database side dependency.
type Capability struct {
	Kind      string `db:"kind"`
	Name      string `db:"name"`
	Installed bool   `db:"installed"`
	Version   string `db:"version"`
}

const (
	extensionsQuery = `
		SELECT 'extension' AS kind, e.name AS name,
		       x.extversion IS NOT NULL AS installed, COALESCE(x.extversion, '') AS version
		FROM unnest($1::text[]) AS e(name)
		LEFT JOIN pg_extension x ON x.extname = e.name
		ORDER BY e.name`
	functionsQuery = `
		SELECT 'function' AS kind, f.name AS name,
		       EXISTS (
		           SELECT 1 FROM pg_proc p JOIN pg_namespace n ON n.oid = p.pronamespace
		           WHERE p.proname = f.name AND ($2 = '' OR n.nspname = $2)
		       ) AS installed, '' AS version
		FROM unnest($1::text[]) AS f(name)
		ORDER BY f.name`
	regconfigsQuery = `
		SELECT 'regconfig' AS kind, r.name AS name,
		       c.cfgname IS NOT NULL AS installed, '' AS version
		FROM unnest($1::text[]) AS r(name)
		LEFT JOIN pg_ts_config c ON c.cfgname = r.name
		ORDER BY r.name`
)

// CheckInstallation probes the extensions, nanoid functions and text search
// configurations the helpers in this package render calls to. The probes
// run concurrently.
func CheckInstallation(ctx context.Context, pool PgxIface, nanoidSchema string, mapping RegconfigMapping) ([]Capability, error) {
	var regconfigs []string
	for _, t := range mapping.Tags() {
		regconfigs = append(regconfigs, string(t.Regconfig))
	}
	regconfigs = internal.Unique(regconfigs)

	results := make([][]Capability, 3)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return pgxscan.Select(ctx, pool, &results[0], extensionsQuery, []string{"pgcrypto", "postgis"})
	})
	g.Go(func() error {
		return pgxscan.Select(ctx, pool, &results[1], functionsQuery,
			[]string{"nanoid", "nanoid_optimized"}, nanoidSchema)
	})
	if len(regconfigs) > 0 {
		g.Go(func() error {
			return pgxscan.Select(ctx, pool, &results[2], regconfigsQuery, regconfigs)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var capabilities []Capability
	for _, r := range results {
		capabilities = append(capabilities, r...)
	}
	for _, c := range capabilities {
		log.WithFields(log.Fields{"kind": c.Kind, "installed": c.Installed}).Debugf("probed %s", c.Name)
	}
	return capabilities, nil
}
