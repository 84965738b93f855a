package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"katydid-common-idgen/pkg/idgen/domain"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print new IDs, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, _ := cmd.Flags().GetInt("count")
			worker, _ := cmd.Flags().GetInt64("worker")
			region, _ := cmd.Flags().GetInt64("region")

			gen, err := snowflake.New(worker, region)
			if err != nil {
				return err
			}
			ids, err := gen.NextIDBatch(cmd.Context(), n)
			if err != nil {
				return err
			}
			for _, id := range domain.NewIDSlice(ids...) {
				fmt.Fprintln(cmd.OutOrStdout(), id.String())
			}
			return nil
		},
	}
	cmd.Flags().IntP("count", "n", 1, "number of IDs")
	cmd.Flags().Int64("worker", 0, "worker id [0, 1023]")
	cmd.Flags().Int64("region", 0, "region id [0, 7]")
	return cmd
}
