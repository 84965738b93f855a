package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"katydid-common-idgen/internal/config"
	"katydid-common-idgen/internal/server"
	"katydid-common-idgen/pkg/idgen"
	"katydid-common-idgen/pkg/logger"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP ID service",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringP("config", "c", "", "config file (yaml, toml or json)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	log, restore, err := logger.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer restore()

	sfCfg := cfg.SnowflakeConfig()
	sfCfg.Logger = log
	if err := idgen.InitWithConfig(sfCfg); err != nil {
		return err
	}
	defer idgen.Reset()

	gen, err := idgen.Default()
	if err != nil {
		return err
	}

	log.Info("ID服务启动",
		zap.Int64("region_id", cfg.Node.RegionID),
		zap.Int64("worker_id", cfg.Node.WorkerID),
		zap.String("addr", cfg.HTTP.Addr))

	if err := server.New(gen, log, cfg.HTTP.Mode).Run(ctx, cfg.HTTP.Addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
