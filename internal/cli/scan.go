package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockbook/internal/qrcode"
	"github.com/mesh-intelligence/stockbook/pkg/types"
)

func newScanCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [payload]",
		Short: "Look up a scanned QR payload",
		Long: `Scan reads the text of a scanned label (argument or stdin), decodes it and
shows the matching record. A payload that is not JSON is taken as a bare
serial.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload string
			if len(args) == 1 {
				payload = args[0]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return sysError(fmt.Errorf("read payload: %w", err))
				}
				payload = string(data)
			}
			scanned := qrcode.ParsePayload(payload)
			if strings.TrimSpace(scanned.Serial) == "" {
				return userError(fmt.Errorf("payload carries no serial"))
			}

			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			r, ok, err := s.Get(types.Selection{Serial: scanned.Serial})
			if err != nil {
				return err
			}
			if e.flags.jsonMode {
				out := map[string]any{"scanned": scanned, "found": ok}
				if ok {
					out["record"] = r
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Serial %s is not in the store\n", scanned.Serial)
				if scanned.Name != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Label reads: %s\n", scanned.Name)
				}
				return nil
			}
			printRecord(cmd.OutOrStdout(), r)
			return nil
		},
	}
}
