// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"errors"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/jmoiron/sqlx/reflectx"

	"github.com/sapcc/pgextras/internal/config"
)

var (
	Parser           = flags.NewParser(&config.Global, flags.Default)
	Mapper           = reflectx.NewMapper("db")
	Output io.Writer = os.Stdout
)

type outputFormatters struct {
	Format string `short:"f" long:"format" description:"The output format, defaults to table" choice:"table" choice:"csv" choice:"markdown" default:"table"`
}

var formatters outputFormatters

func init() {
	if _, err := Parser.AddGroup("Output formatters", "", &formatters); err != nil {
		panic(err)
	}
	Parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		if err := config.ParseConfig(Parser); err != nil {
			return err
		}
		return command.Execute(args)
	}
}

// Run parses args, executes the selected command and returns the process
// exit code.
func Run(args []string) int {
	if _, err := Parser.ParseArgs(args); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			return 0
		}
		return 1
	}
	return 0
}
