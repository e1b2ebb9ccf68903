package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/internal/normalize"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func newImportCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv | file.json>",
		Short: "Batch-create records from a file",
		Long: `Import reads records from a CSV file with a header row or a JSON array of
objects, and appends them in one write. Serials are assigned against the
serials present before the import, so records sharing a name, category and
location get increasing suffixes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raws, err := readImportFile(args[0])
			if err != nil {
				return userError(err)
			}
			records := make([]types.Record, 0, len(raws))
			for _, raw := range raws {
				records = append(records, normalize.Map(raw))
			}

			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.BatchCreate(records)
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d record(s)\n", len(res.Created))
			return nil
		},
	}
}

func readImportFile(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return readImportJSON(f)
	case ".csv":
		return readImportCSV(f)
	default:
		return nil, fmt.Errorf("unsupported import file %q (use .csv or .json)", path)
	}
}

func readImportJSON(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raws []map[string]any
	if err := dec.Decode(&raws); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return raws, nil
}

// readImportCSV maps each row onto the header row's keys. Blank rows are
// skipped.
func readImportCSV(r io.Reader) ([]map[string]any, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	header := rows[0]
	var raws []map[string]any
	for _, row := range rows[1:] {
		raw := make(map[string]any, len(header))
		blank := true
		for i, key := range header {
			if i >= len(row) {
				break
			}
			if strings.TrimSpace(row[i]) != "" {
				blank = false
			}
			raw[key] = row[i]
		}
		if !blank {
			raws = append(raws, raw)
		}
	}
	return raws, nil
}
