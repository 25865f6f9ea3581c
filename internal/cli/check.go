// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sapcc/pgextras/internal/config"
	"github.com/sapcc/pgextras/internal/db"
)

type CheckOptions struct{}

func (*CheckOptions) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := pgxpool.ParseConfig(config.Global.Database.Connection)
	if err != nil {
		return err
	}
	cfg.ConnConfig.Tracer = db.GetTracer()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return runCheck(ctx, pool)
}

func runCheck(ctx context.Context, pool db.PgxIface) error {
	mapping := db.RegconfigMappingFromMap(config.Global.FullText.Regconfig)
	var capabilities []db.Capability
	err := db.Retry(ctx, func(ctx context.Context) error {
		var err error
		capabilities, err = db.CheckInstallation(ctx, pool, config.Global.Nanoid.Schema, mapping)
		return err
	})
	if err != nil {
		return err
	}

	if err := WriteTable(capabilities); err != nil {
		return err
	}
	var missing int
	for _, c := range capabilities {
		if !c.Installed {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d capabilities missing, run migrate", missing, len(capabilities))
	}
	return nil
}

func init() {
	if _, err := Parser.AddCommand("check", "Check installation",
		"Probe the database for the extensions, functions and text search configurations used by pgextras.",
		&CheckOptions{}); err != nil {
		panic(err)
	}
}
