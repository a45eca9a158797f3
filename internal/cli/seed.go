package cli

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"fmt"

	"github.com/spf13/cobra"
)

const seedCreatedBy = "catalogctl"

func newSeedCommand(opts *RootOptions) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert bundled exercises that are missing from the remote store",
		Long: `Insert every exercise of the bundled dataset whose id is not yet in the
remote store. Existing rows are never modified.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			g, closeRows, err := opts.gateway(ctx, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeRows()

			bundled, err := catalog.LoadBundled()
			if err != nil {
				return err
			}

			var created, skipped int
			for _, ex := range bundled.All() {
				_, found, err := g.FetchByID(ctx, ex.ID)
				if err != nil {
					return fmt.Errorf("look up %q: %w", ex.ID, err)
				}
				if found {
					skipped++
					continue
				}
				if !dryRun {
					if _, err := g.Create(ctx, ex, seedCreatedBy); err != nil {
						return fmt.Errorf("create %q: %w", ex.ID, err)
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "+ %s\n", ex.ID)
				created++
			}

			verb := "created"
			if dryRun {
				verb = "would create"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d, skipped %d existing\n", verb, created, skipped)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list the exercises that would be created")
	return cmd
}
