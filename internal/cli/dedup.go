package cli

import (
	"alcyxob/fitness-catalog/internal/catalog"
	"fmt"

	"github.com/spf13/cobra"
)

func newDedupCommand(opts *RootOptions) *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "dedup",
		Short: "Report or remove rows whose names derive the same id",
		Long: `Scan the remote store in name order and find rows whose name derives an id
already taken by an earlier row. The first row is kept. Without --apply the
duplicates are only listed.`,
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
			_, dropped := catalog.Dedupe(exercises)

			out := cmd.OutOrStdout()
			for _, d := range dropped {
				fmt.Fprintf(out, "- %s (%q) duplicates %s\n", d.Dropped.ID, d.Dropped.Name, d.KeptID)
				if !apply {
					continue
				}
				if err := g.Delete(ctx, d.Dropped.ID); err != nil {
					return fmt.Errorf("delete %q: %w", d.Dropped.ID, err)
				}
			}

			switch {
			case len(dropped) == 0:
				fmt.Fprintln(out, "no duplicates")
			case apply:
				fmt.Fprintf(out, "deleted %d duplicate(s)\n", len(dropped))
			default:
				fmt.Fprintf(out, "found %d duplicate(s); rerun with --apply to delete\n", len(dropped))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "delete the duplicate rows")
	return cmd
}
