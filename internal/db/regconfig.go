// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"fmt"
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/sapcc/pgextras/internal/errors"
)

// Regconfig is the name of a PostgreSQL text search configuration.
type Regconfig string

// Text search configurations shipped with PostgreSQL.
const (
	RegconfigSimple     Regconfig = "simple"
	RegconfigArabic     Regconfig = "arabic"
	RegconfigArmenian   Regconfig = "armenian"
	RegconfigBasque     Regconfig = "basque"
	RegconfigCatalan    Regconfig = "catalan"
	RegconfigDanish     Regconfig = "danish"
	RegconfigDutch      Regconfig = "dutch"
	RegconfigEnglish    Regconfig = "english"
	RegconfigFinnish    Regconfig = "finnish"
	RegconfigFrench     Regconfig = "french"
	RegconfigGerman     Regconfig = "german"
	RegconfigGreek      Regconfig = "greek"
	RegconfigHindi      Regconfig = "hindi"
	RegconfigHungarian  Regconfig = "hungarian"
	RegconfigIndonesian Regconfig = "indonesian"
	RegconfigIrish      Regconfig = "irish"
	RegconfigItalian    Regconfig = "italian"
	RegconfigLithuanian Regconfig = "lithuanian"
	RegconfigNepali     Regconfig = "nepali"
	RegconfigNorwegian  Regconfig = "norwegian"
	RegconfigPortuguese Regconfig = "portuguese"
	RegconfigRomanian   Regconfig = "romanian"
	RegconfigRussian    Regconfig = "russian"
	RegconfigSerbian    Regconfig = "serbian"
	RegconfigSpanish    Regconfig = "spanish"
	RegconfigSwedish    Regconfig = "swedish"
	RegconfigTamil      Regconfig = "tamil"
	RegconfigTurkish    Regconfig = "turkish"
	RegconfigYiddish    Regconfig = "yiddish"
)

// LanguageTag maps an application language tag to a regconfig.
type LanguageTag struct {
	Tag       string
	Regconfig Regconfig
}

// RegconfigMapping is an immutable, ordered list of language tags.
type RegconfigMapping struct {
	tags []LanguageTag
}

func NewRegconfigMapping(tags ...LanguageTag) RegconfigMapping {
	return RegconfigMapping{tags: slices.Clone(tags)}
}

// RegconfigMappingFromMap builds a mapping ordered by language tag.
func RegconfigMappingFromMap(m map[string]string) RegconfigMapping {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	tags := make([]LanguageTag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, LanguageTag{Tag: k, Regconfig: Regconfig(m[k])})
	}
	return RegconfigMapping{tags: tags}
}

func (m RegconfigMapping) Tags() []LanguageTag {
	return slices.Clone(m.tags)
}

func (m RegconfigMapping) Lookup(tag string) (Regconfig, bool) {
	for _, t := range m.tags {
		if t.Tag == tag {
			return t.Regconfig, true
		}
	}
	return "", false
}

// Expr returns a CASE expression yielding the regconfig for the language tag
// produced by languageTag. Tags and regconfig names are bound as parameters.
// Tags missing from the mapping yield NULL.
func (m RegconfigMapping) Expr(languageTag sq.Sqlizer) sq.Sqlizer {
	return regconfigCase{tag: languageTag, tags: m.tags}
}

// Literal renders the same expression with quoted literals, for contexts
// without parameters such as generated columns or index expressions.
// languageTagSQL is embedded verbatim.
func (m RegconfigMapping) Literal(languageTagSQL string) (string, error) {
	if len(m.tags) == 0 {
		return "", errors.ErrEmptyRegconfig
	}
	var sb strings.Builder
	sb.WriteString("(CASE")
	for _, t := range m.tags {
		fmt.Fprintf(&sb, " WHEN %s = %s THEN %s::regconfig",
			languageTagSQL, pq.QuoteLiteral(t.Tag), pq.QuoteLiteral(string(t.Regconfig)))
	}
	sb.WriteString(" END)")
	return sb.String(), nil
}

type regconfigCase struct {
	tag  sq.Sqlizer
	tags []LanguageTag
}

func (c regconfigCase) ToSql() (string, []any, error) {
	if len(c.tags) == 0 {
		return "", nil, errors.ErrEmptyRegconfig
	}
	tagSQL, tagArgs, err := c.tag.ToSql()
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	args := make([]any, 0, len(c.tags)*(len(tagArgs)+2))
	sb.WriteString("(CASE")
	for _, t := range c.tags {
		sb.WriteString(" WHEN ")
		sb.WriteString(tagSQL)
		sb.WriteString(" = ? THEN ?::regconfig")
		args = append(args, tagArgs...)
		args = append(args, t.Tag, string(t.Regconfig))
	}
	sb.WriteString(" END)")
	return sb.String(), args, nil
}
