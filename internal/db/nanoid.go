// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lib/pq"

	"github.com/sapcc/pgextras/internal/errors"
)

const (
	NanoidLengthDefault = 21
	NanoidAlphabet      = "_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type NanoidConfig struct {
	// Schema holding the nanoid functions, empty for the search path.
	Schema        string
	DefaultLength int
}

type NanoidOptions struct {
	// Optimized calls nanoid_optimized with a precomputed mask and step.
	Optimized bool
	// Length defaults to NanoidConfig.DefaultLength.
	Length int
	// Alphabet defaults to the one set up by the migration.
	Alphabet string
}

// NanoidGenerator renders calls to the database side nanoid functions.
type NanoidGenerator struct {
	schema        string
	defaultLength int
}

func NewNanoidGenerator(cfg NanoidConfig) NanoidGenerator {
	if cfg.DefaultLength <= 0 {
		cfg.DefaultLength = NanoidLengthDefault
	}
	return NanoidGenerator{schema: cfg.Schema, defaultLength: cfg.DefaultLength}
}

// SQL returns the function call as raw SQL, usable as a column default.
func (g NanoidGenerator) SQL(opts NanoidOptions) (string, error) {
	length := opts.Length
	if length == 0 {
		length = g.defaultLength
	}
	if length < 0 {
		return "", fmt.Errorf("%w: %d", errors.ErrInvalidLength, length)
	}

	fn := "nanoid"
	args := []string{strconv.Itoa(length)}
	if opts.Optimized {
		alphabet := opts.Alphabet
		if alphabet == "" {
			alphabet = NanoidAlphabet
		}
		mask, step, err := nanoidMaskStep(alphabet, length)
		if err != nil {
			return "", err
		}
		fn = "nanoid_optimized"
		args = append(args, pq.QuoteLiteral(alphabet), strconv.Itoa(mask), strconv.Itoa(step))
	} else if opts.Alphabet != "" {
		if _, _, err := nanoidMaskStep(opts.Alphabet, length); err != nil {
			return "", err
		}
		args = append(args, pq.QuoteLiteral(opts.Alphabet))
	}

	var name string
	if g.schema != "" {
		name = pgx.Identifier{g.schema, fn}.Sanitize()
	} else {
		name = pgx.Identifier{fn}.Sanitize()
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(args, ",")), nil
}

// Expr wraps SQL for use in a statement built with $n placeholders. Question
// marks in the alphabet are escaped so they survive placeholder replacement.
func (g NanoidGenerator) Expr(opts NanoidOptions) (sq.Sqlizer, error) {
	s, err := g.SQL(opts)
	if err != nil {
		return nil, err
	}
	return sq.Expr(strings.ReplaceAll(s, "?", "??")), nil
}

// nanoidMaskStep mirrors the computation done by nanoid() in the database.
func nanoidMaskStep(alphabet string, length int) (mask, step int, err error) {
	n := utf8.RuneCountInString(alphabet)
	if n < 2 || n > 255 {
		return 0, 0, fmt.Errorf("%w: needs 2 to 255 characters, got %d", errors.ErrInvalidAlphabet, n)
	}
	mask = (1 << bits.Len(uint(n-1))) - 1
	step = int(math.Ceil(1.6 * float64(mask*length) / float64(n)))
	return mask, step, nil
}
