// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"

	"github.com/sapcc/pgextras/internal/cli"
)

func main() {
	cli.Parser.ShortDescription = "pgextras"
	cli.Parser.LongDescription = "PostGIS columns, nanoid and full text search helpers for PostgreSQL."
	os.Exit(cli.Run(os.Args[1:]))
}
