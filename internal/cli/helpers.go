package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/tidwall/pretty"

	"github.com/mesh-intelligence/stockbook/pkg/types"
)

// parseSelector reads one target. Accepted forms: "row:N", "serial:S",
// "S@N" (serial and row-number), bare digits (row-number) and anything
// else (serial).
func parseSelector(arg string) (types.Selection, error) {
	arg = strings.TrimSpace(arg)
	switch {
	case arg == "":
		return types.Selection{}, fmt.Errorf("empty selector")
	case strings.HasPrefix(arg, "row:"):
		n, err := strconv.Atoi(strings.TrimPrefix(arg, "row:"))
		if err != nil || n < types.FirstDataRow {
			return types.Selection{}, fmt.Errorf("invalid row-number in %q (data rows start at %d)", arg, types.FirstDataRow)
		}
		return types.Selection{RowNumber: n}, nil
	case strings.HasPrefix(arg, "serial:"):
		return types.Selection{Serial: strings.TrimPrefix(arg, "serial:")}, nil
	}
	if at := strings.LastIndexByte(arg, '@'); at > 0 {
		if n, err := strconv.Atoi(arg[at+1:]); err == nil && n >= types.FirstDataRow {
			return types.Selection{Serial: arg[:at], RowNumber: n}, nil
		}
	}
	if n, err := strconv.Atoi(arg); err == nil {
		if n < types.FirstDataRow {
			return types.Selection{}, fmt.Errorf("invalid row-number %d (data rows start at %d)", n, types.FirstDataRow)
		}
		return types.Selection{RowNumber: n}, nil
	}
	return types.Selection{Serial: arg}, nil
}

func parseSelectors(args []string) ([]types.Selection, error) {
	out := make([]types.Selection, 0, len(args))
	for _, a := range args {
		sel, err := parseSelector(a)
		if err != nil {
			return nil, userError(err)
		}
		out = append(out, sel)
	}
	return out, nil
}

// parseFields reads record fields from a single JSON object argument or
// from key=value pairs.
func parseFields(args []string) (map[string]any, error) {
	if len(args) == 1 && strings.HasPrefix(strings.TrimSpace(args[0]), "{") {
		var m map[string]any
		dec := json.NewDecoder(strings.NewReader(args[0]))
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, userError(fmt.Errorf("invalid JSON record: %w", err))
		}
		return m, nil
	}
	m := make(map[string]any, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, userError(fmt.Errorf("invalid field %q (expected key=value)", arg))
		}
		m[strings.TrimSpace(k)] = v
	}
	return m, nil
}

// fieldsOf returns r as a raw field map suitable for overlaying. The
// quantity stays typed so that stored text the parser rejects survives.
func fieldsOf(r types.Record) map[string]any {
	m := make(map[string]any, len(types.Fields))
	for k, v := range r.Fields() {
		m[k] = v
	}
	m[types.FieldQuantity] = r.Quantity
	return m
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}

// printRecordTable prints records in a human-readable table format.
func printRecordTable(w io.Writer, records []types.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROW\tSERIAL\tNAME\tQTY\tLOCATION\tSTATUS")
	fmt.Fprintln(tw, "---\t------\t----\t---\t--------\t------")
	for _, r := range records {
		name := r.Name
		if len([]rune(name)) > 40 {
			name = string([]rune(name)[:37]) + "..."
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.RowNumber, r.Serial, name, r.Quantity, r.Location, r.Status)
	}
	tw.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
	fmt.Fprintf(w, "Total: %d record(s)\n", len(records))
}

// printRecord prints one record as "Label: value" lines, skipping empty
// fields.
func printRecord(w io.Writer, r types.Record) {
	if r.RowNumber >= types.FirstDataRow {
		fmt.Fprintf(w, "%-18s %d\n", "Row:", r.RowNumber)
	}
	for i, v := range r.Row() {
		if v == "" {
			continue
		}
		fmt.Fprintf(w, "%-18s %s\n", types.Header[i]+":", v)
	}
}
