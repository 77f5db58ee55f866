// Package output renders command results as text tables, JSON, or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// Formatter turns a result value into printable text.
type Formatter interface {
	Format(v any) string
}

// New returns the formatter for format: "json", "yaml", or the default
// aligned table.
func New(format string) Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		return jsonFormatter{}
	case "yaml":
		return yamlFormatter{}
	default:
		return tableFormatter{}
	}
}

type tableFormatter struct{}

func (tableFormatter) Format(v any) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice:
		writeSlice(w, rv)
	case reflect.Struct:
		writeFields(w, rv)
	default:
		fmt.Fprintln(w, v)
	}

	w.Flush()
	return buf.String()
}

// writeSlice prints a header row from the element type followed by one
// line per element. Non-struct elements print one per line.
func writeSlice(w *tabwriter.Writer, rv reflect.Value) {
	if rv.Len() == 0 {
		fmt.Fprintln(w, "no data")
		return
	}
	elem := reflect.Indirect(rv.Index(0))
	if elem.Kind() != reflect.Struct {
		for i := 0; i < rv.Len(); i++ {
			fmt.Fprintln(w, rv.Index(i).Interface())
		}
		return
	}

	t := elem.Type()
	headers := make([]string, t.NumField())
	for i := range headers {
		headers[i] = strings.ToUpper(t.Field(i).Name)
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))

	for i := 0; i < rv.Len(); i++ {
		row := reflect.Indirect(rv.Index(i))
		cells := make([]string, row.NumField())
		for j := range cells {
			cells[j] = fmt.Sprintf("%v", row.Field(j).Interface())
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
}

// writeFields prints one "name: value" line per struct field.
func writeFields(w *tabwriter.Writer, rv reflect.Value) {
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		fmt.Fprintf(w, "%s:\t%v\n", t.Field(i).Name, rv.Field(i).Interface())
	}
}

type jsonFormatter struct{}

func (jsonFormatter) Format(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("format json: %v\n", err)
	}
	return string(b) + "\n"
}

type yamlFormatter struct{}

func (yamlFormatter) Format(v any) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("format yaml: %v\n", err)
	}
	return string(b)
}
