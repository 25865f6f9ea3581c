// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"

	"github.com/sapcc/pgextras/internal/config"
)

type VersionOptions struct{}

func (*VersionOptions) Execute(_ []string) error {
	_, err := fmt.Fprintf(Output, "pgextras %s (%s)\n", config.Version, config.BuildTime)
	return err
}

func init() {
	if _, err := Parser.AddCommand("version", "Version",
		"Show Version.", &VersionOptions{}); err != nil {
		panic(err)
	}
}
