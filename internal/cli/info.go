package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

// storeInfo is the output of the info command.
type storeInfo struct {
	Path           string `json:"path"`
	Bytes          int64  `json:"bytes"`
	Modified       string `json:"modified"`
	Records        int    `json:"records"`
	Units          int    `json:"units"`
	Locations      int    `json:"locations"`
	Decommissioned int    `json:"decommissioned"`
	LastDeleted    int    `json:"last_deleted"`
}

func newInfoCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show store file statistics",
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
			st, err := os.Stat(s.Path())
			if err != nil {
				return sysError(fmt.Errorf("stat store: %w", err))
			}

			info := storeInfo{
				Path:     s.Path(),
				Bytes:    st.Size(),
				Modified: st.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
				Records:  len(records),
			}
			locations := make(map[string]bool)
			label := e.cfg.Label()
			for _, r := range records {
				info.Units += r.Quantity.Units()
				locations[strings.ToLower(strings.TrimSpace(r.Location))] = true
				if strings.TrimSpace(r.Status) == label {
					info.Decommissioned++
				}
			}
			info.Locations = len(locations)
			if undo, err := readRecordsJSON(e.lastDeletedPath()); err == nil {
				info.LastDeleted = len(undo)
			} else if !errors.Is(err, os.ErrNotExist) {
				e.log.Warn("reading undo file", "error", err)
			}

			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), info)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Store:           %s\n", info.Path)
			fmt.Fprintf(w, "Size:            %s\n", humanize.Bytes(uint64(info.Bytes)))
			fmt.Fprintf(w, "Modified:        %s\n", humanize.Time(st.ModTime()))
			fmt.Fprintf(w, "Records:         %s\n", humanize.Comma(int64(info.Records)))
			fmt.Fprintf(w, "Units:           %s\n", humanize.Comma(int64(info.Units)))
			fmt.Fprintf(w, "Locations:       %d\n", info.Locations)
			fmt.Fprintf(w, "Decommissioned:  %d (%s)\n", info.Decommissioned, label)
			if info.LastDeleted > 0 {
				fmt.Fprintf(w, "Undo available:  %d record(s)\n", info.LastDeleted)
			}
			return nil
		},
	}
}
