/*
 *   Copyright 2020 SAP SE
 *
 *   Licensed under the Apache License, Version 2.0 (the "License");
 *   you may not use this file except in compliance with the License.
 *   You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 *   Unless required by applicable law or agreed to in writing, software
 *   distributed under the License is distributed on an "AS IS" BASIS,
 *   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *   See the License for the specific language governing permissions and
 *   limitations under the License.
 */

package config

import (
	"fmt"

	"github.com/jessevdk/go-flags"
	"github.com/sapcc/go-bits/osext"
	log "github.com/sirupsen/logrus"
)

var (
	Global    PgExtras
	Version   = "dev"
	BuildTime = "unknown"
)

type PgExtras struct {
	ConfigFile string   `long:"config-file" description:"Use config file"`
	Default    Default  `group:"DEFAULT"`
	Database   Database `group:"database"`
	Postgis    Postgis  `group:"postgis"`
	Query      Query    `group:"query"`
	Nanoid     Nanoid   `group:"nanoid"`
	FullText   FullText `group:"fulltext"`
}

type Default struct {
	Debug bool `short:"d" long:"debug" description:"Show debug information"`
}

type Database struct {
	Connection string `long:"database-connection" ini-name:"connection" description:"Connection string to use to connect to the database. Defaults to $PGEXTRAS_DB_URL."`
	Trace      bool   `long:"database-trace" ini-name:"trace" description:"Log every statement sent to the database."`
}

type Postgis struct {
	Schema      string `long:"postgis-schema" ini-name:"schema" description:"Schema the PostGIS extension is installed in. Empty uses the search path."`
	DefaultSRID int    `long:"default-srid" ini-name:"default_srid" description:"SRID for columns without an explicit one. 0 keeps the column unconstrained."`
}

type Query struct {
	PageSize uint64 `long:"page-size" ini-name:"page_size" default:"20" description:"Default page size for paginated queries."`
}

type Nanoid struct {
	Schema        string `long:"nanoid-schema" ini-name:"schema" description:"Schema holding the nanoid functions. Empty uses the search path."`
	DefaultLength int    `long:"nanoid-length" ini-name:"default_length" default:"21" description:"Default nanoid length."`
}

type FullText struct {
	Regconfig map[string]string `long:"regconfig" ini-name:"regconfig" description:"Language tag to regconfig mapping, e.g. en:english. Can be repeated."`
}

func IsDebug() bool {
	return Global.Default.Debug
}

// ParseConfig applies the ini file given by --config-file. Options already
// set on the command line take precedence over the file.
func ParseConfig(parser *flags.Parser) error {
	if Global.ConfigFile != "" {
		ini := flags.NewIniParser(parser)
		ini.ParseAsDefaults = true
		if err := ini.ParseFile(Global.ConfigFile); err != nil {
			return fmt.Errorf("config file %s: %w", Global.ConfigFile, err)
		}
	}

	if Global.Database.Connection == "" {
		Global.Database.Connection = osext.GetenvOrDefault(
			"PGEXTRAS_DB_URL", "postgres://postgres@127.0.0.1:5432/postgres?sslmode=disable")
	}

	if IsDebug() {
		log.SetLevel(log.DebugLevel)
	}
	log.Debugf("Loaded configuration: page_size=%d nanoid_length=%d default_srid=%d",
		Global.Query.PageSize, Global.Nanoid.DefaultLength, Global.Postgis.DefaultSRID)
	return nil
}
