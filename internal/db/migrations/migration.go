// Copyright 2023 SAP SE
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/z0ne-dev/mgx/v2"

	"github.com/sapcc/pgextras/internal/config"
	"github.com/sapcc/pgextras/internal/db"
)

// nanoidSchema prefixes the nanoid functions with config.Global.Nanoid.Schema.
func nanoidSchema() string {
	if config.Global.Nanoid.Schema == "" {
		return ""
	}
	return pgx.Identifier{config.Global.Nanoid.Schema}.Sanitize() + "."
}

var Migrations = mgx.Migrations(
	mgx.NewMigration("postgis", func(ctx context.Context, commands mgx.Commands) error {
		if config.Global.Postgis.Schema != "" {
			schema := pgx.Identifier{config.Global.Postgis.Schema}.Sanitize()
			if _, err := commands.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+schema); err != nil {
				return err
			}
			_, err := commands.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis SCHEMA "+schema)
			return err
		}
		_, err := commands.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS postgis")
		return err
	}),
	mgx.NewMigration("nanoid", func(ctx context.Context, commands mgx.Commands) error {
		if _, err := commands.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS pgcrypto"); err != nil {
			return err
		}
		if config.Global.Nanoid.Schema != "" {
			if _, err := commands.Exec(ctx, "CREATE SCHEMA IF NOT EXISTS "+
				pgx.Identifier{config.Global.Nanoid.Schema}.Sanitize()); err != nil {
				return err
			}
		}

		// nanoid_optimized expects mask and step to be derived from the
		// alphabet, see db.NanoidGenerator.
		if _, err := commands.Exec(ctx, fmt.Sprintf(`
			CREATE OR REPLACE FUNCTION %snanoid_optimized(size int, alphabet text, mask int, step int)
			RETURNS text
			LANGUAGE plpgsql
			VOLATILE
			PARALLEL SAFE
			AS $$
			DECLARE
				id_builder text := '';
				counter int := 0;
				bytes bytea;
				alphabet_index int;
				alphabet_array text[];
				alphabet_length int := length(alphabet);
			BEGIN
				alphabet_array := regexp_split_to_array(alphabet, '');
				LOOP
					bytes := gen_random_bytes(step);
					FOR counter IN 0..step - 1 LOOP
						alphabet_index := (get_byte(bytes, counter) & mask) + 1;
						IF alphabet_index <= alphabet_length THEN
							id_builder := id_builder || alphabet_array[alphabet_index];
							IF length(id_builder) = size THEN
								RETURN id_builder;
							END IF;
						END IF;
					END LOOP;
				END LOOP;
			END
			$$;`, nanoidSchema()),
		); err != nil {
			return err
		}

		_, err := commands.Exec(ctx, fmt.Sprintf(`
			CREATE OR REPLACE FUNCTION %[1]snanoid(size int DEFAULT %[2]d, alphabet text DEFAULT '%[3]s')
			RETURNS text
			LANGUAGE plpgsql
			VOLATILE
			PARALLEL SAFE
			AS $$
			DECLARE
				alphabet_length int := length(alphabet);
				mask int;
				step int;
			BEGIN
				IF size IS NULL OR size < 1 THEN
					RAISE EXCEPTION 'The size must be defined and greater than 0!';
				END IF;
				IF alphabet IS NULL OR alphabet_length < 2 OR alphabet_length > 255 THEN
					RAISE EXCEPTION 'The alphabet must contain between 2 and 255 symbols!';
				END IF;
				mask := (2 << cast(floor(log(alphabet_length - 1) / log(2)) AS int)) - 1;
				step := cast(ceil(1.6 * mask * size / alphabet_length) AS int);
				RETURN %[1]snanoid_optimized(size, alphabet, mask, step);
			END
			$$;`, nanoidSchema(), db.NanoidLengthDefault, db.NanoidAlphabet),
		)
		return err
	}),
)
