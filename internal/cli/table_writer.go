// SPDX-FileCopyrightText: Copyright 2025 SAP SE or an SAP affiliate company
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

func formatValue(v reflect.Value) string {
	switch kind := v.Kind(); kind {
	case reflect.Bool:
		return fmt.Sprintf("%t", v.Bool())
	case reflect.Ptr:
		if v.IsNil() {
			return "Null"
		}
		return formatValue(v.Elem())
	default:
		return fmt.Sprintf("%v", v)
	}
}

// header returns the db tag names of t and their field indexes in
// declaration order.
func header(t reflect.Type) (table.Row, []int) {
	type column struct {
		name  string
		index int
	}
	var columns []column
	for name, fi := range Mapper.TypeMap(t).Names {
		if len(fi.Index) != 1 {
			continue
		}
		columns = append(columns, column{name, fi.Index[0]})
	}
	sort.Slice(columns, func(i, j int) bool { return columns[i].index < columns[j].index })

	row := make(table.Row, 0, len(columns))
	indexes := make([]int, 0, len(columns))
	for _, c := range columns {
		row = append(row, c.name)
		indexes = append(indexes, c.index)
	}
	return row, indexes
}

// WriteTable prints a slice of structs, one row per element and one column
// per db tagged field.
func WriteTable(data any) error {
	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Slice {
		return fmt.Errorf("cannot write %s as table", v.Kind())
	}

	elem := v.Type().Elem()
	if elem.Kind() == reflect.Ptr {
		elem = elem.Elem()
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(Output)
	row, indexes := header(elem)
	tw.AppendHeader(row)
	for i := 0; i < v.Len(); i++ {
		item := reflect.Indirect(v.Index(i))
		r := make(table.Row, 0, len(indexes))
		for _, idx := range indexes {
			r = append(r, formatValue(item.Field(idx)))
		}
		tw.AppendRow(r)
	}

	switch formatters.Format {
	case "", "table":
		tw.SetStyle(table.StyleLight)
		tw.Render()
	case "csv":
		tw.RenderCSV()
	case "markdown":
		tw.RenderMarkdown()
	default:
		return fmt.Errorf("format option %s is not supported", formatters.Format)
	}
	return nil
}
