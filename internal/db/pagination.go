// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	log "github.com/sirupsen/logrus"

	"github.com/sapcc/pgextras/internal/config"
)

const PageSizeDefault uint64 = 20

func pageSize(size uint64) uint64 {
	if size > 0 {
		return size
	}
	if config.Global.Query.PageSize > 0 {
		return config.Global.Query.PageSize
	}
	return PageSizeDefault
}

// Paginate applies LIMIT size OFFSET page*size, page being zero-based.
// A size of 0 selects the configured default page size.
func Paginate(q sq.SelectBuilder, page, size uint64) sq.SelectBuilder {
	size = pageSize(size)
	return q.Limit(size).Offset(page * size)
}

// FetchPage runs the paginated query and scans all rows into T.
func FetchPage[T any](ctx context.Context, db pgxscan.Querier, q sq.SelectBuilder, page, size uint64) ([]T, error) {
	sql, args, err := Paginate(q, page, size).ToSql()
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"page": page, "size": pageSize(size)}).Debug(sql)

	var items []T
	if err := pgxscan.Select(ctx, db, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	return items, nil
}
