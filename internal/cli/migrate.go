// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"context"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
	"github.com/z0ne-dev/mgx/v2"

	"github.com/sapcc/pgextras/internal/config"
	"github.com/sapcc/pgextras/internal/db"
	"github.com/sapcc/pgextras/internal/db/migrations"
)

type MigrateOptions struct{}

func (*MigrateOptions) Execute(_ []string) error {
	ctx := context.Background()
	cfg, err := pgx.ParseConfig(config.Global.Database.Connection)
	if err != nil {
		return err
	}
	cfg.Tracer = db.GetTracer()

	migrator, err := mgx.New(migrations.Migrations)
	if err != nil {
		return err
	}

	return db.Retry(ctx, func(ctx context.Context) error {
		conn, err := pgx.ConnectConfig(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() {
			if err := conn.Close(context.Background()); err != nil {
				log.Warn(err.Error())
			}
		}()

		if err := migrator.Migrate(ctx, conn); err != nil {
			return err
		}
		log.Infof("Database %s migrated", cfg.Database)
		return nil
	})
}

func init() {
	if _, err := Parser.AddCommand("migrate", "Migrate",
		"Install PostGIS, pgcrypto and the nanoid functions.", &MigrateOptions{}); err != nil {
		panic(err)
	}
}
