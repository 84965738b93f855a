package main

import (
	"os"

	"github.com/spf13/cobra"
)

// @title idgen API
// @version 1.0
// @description Snowflake ID 生成服务：生成、解析ID，查看生成器指标。
// @BasePath /
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "idgen",
		Short:        "Snowflake ID generator",
		Long:         "idgen issues 64-bit IDs (41-bit timestamp, 3-bit region, 10-bit worker, 10-bit sequence).",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newNextCmd())
	root.AddCommand(newDecodeCmd())
	return root
}
