package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/internal/normalize"
	"github.com/mesh-intelligence/stockbook/internal/paths"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func newAddCmd(e *env) *cobra.Command {
	var qrOut string
	cmd := &cobra.Command{
		Use:   "add <json | key=value...>",
		Short: "Add a record",
		Long: `Add normalizes a record, assigns a serial when none is given and appends it.

Fields may be given as one JSON object or as key=value pairs. Keys are field
names (subsidy_program) or header labels ("Subsidy Program").

Example:
  stockbook add name=Router quantity=2 location="Sala 1"
  stockbook add '{"name":"Router","quantity":2}' --qr router.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseFields(args)
			if err != nil {
				return err
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Create(normalize.Map(raw))
			if err != nil {
				return err
			}
			if qrOut != "" {
				if err := os.WriteFile(qrOut, res.Artifact.PNG, 0o644); err != nil {
					return sysError(fmt.Errorf("write qr image: %w", err))
				}
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"record":  res.Record,
					"payload": res.Artifact.Payload,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s at row %d\n", res.Record.Serial, res.Record.RowNumber)
			return nil
		},
	}
	cmd.Flags().StringVar(&qrOut, "qr", "", "write the record's QR code PNG to this file")
	return cmd
}

func newListCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			records, err := s.List()
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				if records == nil {
					records = []types.Record{}
				}
				return writeJSON(cmd.OutOrStdout(), records)
			}
			printRecordTable(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <selector>",
		Short: "Show one record",
		Long: `Get shows the record a selector resolves to.

Selectors: a row-number (5 or row:5), a serial (ROUT-CAT-LOC-TIP-001 or
serial:...), or both as SERIAL@ROW. When both are given and disagree, the
serial wins.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelector(args[0])
			if err != nil {
				return userError(err)
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			r, ok, err := s.Get(sel)
			if err != nil {
				return err
			}
			if !ok {
				return userError(fmt.Errorf("no record matches %q", args[0]))
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			printRecord(cmd.OutOrStdout(), r)
			return nil
		},
	}
}

func newUpdateCmd(e *env) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "update <selector> <json | key=value...>",
		Short: "Update a record",
		Long: `Update writes fields to the record a selector resolves to.

The given fields are laid over the current record; use --replace to write
exactly the given fields and clear the rest. The serial is kept unless a new
one is given.

Example:
  stockbook update 3 status=Operativo
  stockbook update ROUT-CAT-LOC-TIP-001 location="Sala 2" --json`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, err := parseSelector(args[0])
			if err != nil {
				return userError(err)
			}
			raw, err := parseFields(args[1:])
			if err != nil {
				return err
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			if !replace {
				current, ok, err := s.Get(sel)
				if err != nil {
					return err
				}
				if ok {
					merged := fieldsOf(current)
					for k, v := range raw {
						merged[k] = v
					}
					raw = merged
				}
			}
			res, err := s.Update(sel, normalize.Map(raw))
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			if res.Outcome == types.OutcomeNotFound {
				fmt.Fprintf(cmd.OutOrStdout(), "No record matches %q; nothing updated\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s at row %d\n", res.Record.Serial, res.Record.RowNumber)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite every field instead of merging")
	return cmd
}

func newDeleteCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <selector...>",
		Short: "Delete records",
		Long: `Delete removes every record the selectors resolve to and saves the removed
records so that "stockbook restore --last" can put them back.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sels, err := parseSelectors(args)
			if err != nil {
				return err
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Delete(sels)
			if err != nil {
				return err
			}
			if res.Deleted > 0 {
				if err := e.saveLastDeleted(res.Records); err != nil {
					e.log.Warn("saving deleted records for undo", "error", err)
				}
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d record(s), %d not found\n", res.Deleted, res.Missing)
			return nil
		},
	}
}

func newRestoreCmd(e *env) *cobra.Command {
	var last bool
	var file string
	cmd := &cobra.Command{
		Use:   "restore (--last | --file records.json)",
		Short: "Re-append deleted records",
		Long: `Restore appends records as new rows without checking their serials.

--last restores the records removed by the most recent delete; --file reads a
JSON array of records.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if last == (file != "") {
				return userError(errors.New("give exactly one of --last or --file"))
			}
			path := file
			if last {
				path = e.lastDeletedPath()
			}
			records, err := readRecordsJSON(path)
			if err != nil {
				if last && errors.Is(err, os.ErrNotExist) {
					return userError(errors.New("nothing to restore"))
				}
				return userError(err)
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Restore(records)
			if err != nil {
				return err
			}
			if last {
				if err := os.Remove(path); err != nil {
					e.log.Warn("removing undo file", "path", path, "error", err)
				}
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored %d record(s)\n", res.Restored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&last, "last", false, "restore the records removed by the last delete")
	cmd.Flags().StringVar(&file, "file", "", "JSON file holding an array of records")
	return cmd
}

func newDecommissionCmd(e *env) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "decommission <selector...>",
		Short: "Mark records as decommissioned",
		Long: `Decommission sets the status of every resolved record to the decommission
label (config decommission_label, default "` + types.DefaultDecommissionLabel + `"). Records already
at the label are counted as matched but left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sels, err := parseSelectors(args)
			if err != nil {
				return err
			}
			if label == "" {
				label = e.cfg.Label()
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Decommission(sels, label)
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Matched %d, updated %d, not found %d\n", res.Matched, res.Updated, res.Missing)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "status label to set")
	return cmd
}

func newSeedCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Add the built-in sample records",
		Long:  "Seed adds a fixed set of sample records. Records whose serial is already\nin the store are skipped, so seeding twice adds nothing.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			res, err := s.Seed(nil)
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d record(s), %d already present\n", len(res.Created), res.Skipped)
			return nil
		},
	}
}

func (e *env) lastDeletedPath() string {
	return filepath.Join(e.dataDir, paths.LastDeletedFileName)
}

func (e *env) saveLastDeleted(records []types.Record) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(e.dataDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(e.lastDeletedPath(), data, 0o644)
}

func readRecordsJSON(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []types.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	for i := range records {
		records[i].RowNumber = 0
	}
	return records, nil
}
