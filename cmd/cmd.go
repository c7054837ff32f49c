package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"collectibles/internal/api"
	"collectibles/internal/config"
	"collectibles/internal/entity/common"
	"collectibles/internal/notify"
	"collectibles/internal/session"
	"collectibles/internal/storage"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// RootCmd 根命令
var RootCmd = &cobra.Command{
	Use:   "collectibles",
	Short: "Collectibles platform client",
	Long:  `Command line client for the collectibles trading platform: account, wallet, sign-in and notices.`,

	SilenceUsage:  true,
	SilenceErrors: true,
}

// 全局参数
var (
	tokenFlag string
	pageFlag  int64
	limitFlag int64
)

func init() {
	RootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "use this token instead of the saved session")

	// 添加子命令
	RootCmd.AddCommand(loginCmd, smsCmd, logoutCmd, profileCmd, realNameCmd)
	RootCmd.AddCommand(rechargeCmd, withdrawCmd, transferCmd)
	RootCmd.AddCommand(signInCmd, noticesCmd)
	RootCmd.AddCommand(configCmd, stateCmd, proxyCmd)
}

// app 一次命令执行所需的全部依赖
type app struct {
	cfg     config.Config
	log     *logrus.Entry
	store   storage.Store
	local   *storage.Local
	session *session.Session
	client  *api.Client
	notices *notify.State
}

// newApp 按配置装配存储、会话与接口客户端
// logOut: 日志输出位置，通常为 stderr
func newApp(logOut io.Writer) (*app, error) {
	cfg, err := config.ParseConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cfg, logOut)

	store, err := storage.NewStore(cfg)
	if err != nil {
		log.WithError(err).Error("failed to initialise state store")
		return nil, err
	}
	local := storage.NewLocal(store, cfg.StatePrefix)

	sess := session.New(local,
		session.WithTTL(time.Duration(cfg.SessionTTLMinutes)*time.Minute),
		session.WithLogger(log.WithField("component", "session")),
	)
	client := api.NewFromConfig(cfg, sess,
		api.WithLogger(log.WithField("component", "api")),
		api.WithCompensationHandler(func(_ context.Context, lookup string, err error) {
			log.WithError(err).WithField("lookup", lookup).Warn("follow_up_lookup_failed")
		}),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		store:   store,
		local:   local,
		session: sess,
		client:  client,
		notices: notify.New(local),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// callOpts 在指定 --token 时覆盖会话中的令牌
func (a *app) callOpts() []api.Option {
	if strings.TrimSpace(tokenFlag) == "" {
		return nil
	}
	return []api.Option{api.WithToken(strings.TrimSpace(tokenFlag))}
}

func newLogger(cfg config.Config, out io.Writer) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(out)
	if strings.EqualFold(cfg.LogFormat, "text") {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logrus.NewEntry(logger)
}

type runFunc func(cmd *cobra.Command, args []string, a *app) error

// withApp 为子命令装配依赖，执行结束后关闭存储
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(cmd, args, a)
	}
}

// newTable 创建统一样式的表格
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetHeaderAlignment(tablewriter.ALIGN_CENTER)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func pageParams() common.BaseParams {
	return common.BaseParams{Page: pageFlag, Limit: limitFlag}
}

func addPageFlags(c *cobra.Command) {
	c.Flags().Int64Var(&pageFlag, "page", 1, "page number")
	c.Flags().Int64Var(&limitFlag, "limit", 10, "page size")
}

func parseID(raw string) (common.ID, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return common.ID(id), nil
}

func printMessage(w io.Writer, msg, fallback string) {
	if strings.TrimSpace(msg) == "" {
		msg = fallback
	}
	fmt.Fprintln(w, msg)
}
