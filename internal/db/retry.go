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

package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"
)

const retries = 2

// Retry runs fn up to retries+1 times. Integrity constraint violations,
// invalid statements, cancellation and pgx.ErrNoRows are returned right away.
func Retry(ctx context.Context, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(retries, retry.NewConstant(50*time.Millisecond))
	attempt := 0
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fn(ctx)
		if err == nil || !retryable(err) {
			return err
		}
		log.WithError(err).WithField("attempt", attempt).Warn("db.Retry")
		return retry.RetryableError(err)
	})
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, pgx.ErrNoRows) {
		return false
	}
	var pe *pgconn.PgError
	if !errors.As(err, &pe) {
		return true
	}
	switch {
	case pgerrcode.IsIntegrityConstraintViolation(pe.Code),
		pgerrcode.IsSyntaxErrororAccessRuleViolation(pe.Code),
		pgerrcode.IsDataException(pe.Code):
		return false
	}
	return true
}
