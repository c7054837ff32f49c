package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"collectibles/internal/config"
	"collectibles/internal/devproxy"
	"collectibles/internal/format"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

// configCmd 输出解析后的接口地址与存储配置
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the resolved API target and state store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.ParseConfig()
		if err != nil {
			return err
		}
		target := config.Resolve(cfg)

		table := newTable(cmd.OutOrStdout(), "Setting", "Value")
		table.Append([]string{"Environment", cfg.AppEnv})
		table.Append([]string{"Base URL", target.BaseURL})
		table.Append([]string{"Asset origin", target.Origin})
		table.Append([]string{"Resolved from", string(target.Source)})
		table.Append([]string{"Legacy auth header", strconv.FormatBool(cfg.LegacyAuthHeader)})
		table.Append([]string{"State store", cfg.StateStore})
		if cfg.IsDevelopment() {
			table.Append([]string{"Proxy upstream", config.UpstreamOrigin(cfg)})
		}
		table.Render()
		return nil
	},
}

// stateCmd 查看本地保存的状态键
var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "List locally saved state keys and their expiry",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		ctx := cmd.Context()
		keys, err := a.local.Keys(ctx)
		if err != nil {
			return err
		}
		now := time.Now()
		table := newTable(cmd.OutOrStdout(), "Key", "Expires")
		for _, key := range keys {
			expires := "never"
			if at, err := a.local.ExpiresAt(ctx, key); err == nil && !at.IsZero() {
				expires = format.Timestamp(at, now)
			}
			table.Append([]string{key, expires})
		}
		table.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "%d keys in %s store\n", len(keys), a.cfg.StateStore)
		return nil
	}),
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every locally saved key, including the session",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		ctx := cmd.Context()
		keys, err := a.local.Keys(ctx)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := a.local.Remove(ctx, key); err != nil {
				return err
			}
		}
		a.log.WithField("count", len(keys)).Info("local_state_cleared")
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d keys\n", len(keys))
		return nil
	}),
}

func init() {
	stateCmd.AddCommand(stateClearCmd)
}

// proxyCmd 启动本地开发代理
var proxyCmd = &cobra.Command{
	Use:   "proxy",
	Short: "Run the local development proxy",
	Long:  `Listen on DEV_PROXY_ADDR and forward API_PREFIX requests to API_TARGET until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.ParseConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg, cmd.ErrOrStderr())

		gin.SetMode(gin.ReleaseMode)
		srv, err := devproxy.New(cfg, log)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Run(ctx)
	},
}
