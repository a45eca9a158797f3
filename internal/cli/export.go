package cli

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExportCommand(opts *RootOptions) *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the remote catalog in the bundled dataset format",
		Long: `Fetch the whole remote catalog, drop duplicates, and write it as YAML in the
same shape as the bundled fallback dataset.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, closeRows, err := opts.gateway(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeRows()

			exercises, err := g.FetchAll(ctx)
			if err != nil {
				return err
			}
			kept, dropped := catalog.Dedupe(exercises)
			data, err := catalog.EncodeExercises(kept)
			if err != nil {
				return err
			}

			if outPath == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d exercise(s) to %s (%d duplicate(s) dropped)\n", len(kept), outPath, len(dropped))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	return cmd
}
