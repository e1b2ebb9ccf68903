package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize configuration and the store file",
		Long: "Create the configuration and data directories, write a default config.yaml\n" +
			"if none exists, and create the store file with its header row.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(e.dataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}
			s, err := e.open()
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "Store initialized at %s\n", s.Path())
			return nil
		},
	}
}
