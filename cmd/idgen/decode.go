package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"katydid-common-idgen/pkg/idgen/domain"
	"katydid-common-idgen/pkg/idgen/snowflake"
)

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <id>",
		Short: "Print the fields of an ID (decimal, 0x or 0b)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := domain.ParseID(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(snowflake.Decompose(id.Uint64()))
		},
	}
}
