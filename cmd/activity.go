package cmd

import (
	"fmt"
	"time"

	"collectibles/internal/entity/common"
	"collectibles/internal/entity/dto"
	"collectibles/internal/format"

	"github.com/spf13/cobra"
)

var (
	noticeTypeFlag string
	unreadOnlyFlag bool
	readAllFlag    bool
)

// signInCmd 每日签到
var signInCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in for today's reward",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.SignIn(cmd.Context(), a.callOpts()...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "signed in, reward %s, %d days in a row\n",
			format.Amount(resp.Data.Reward), resp.Data.ContinueDays)
		return nil
	}),
}

var signInInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the sign-in calendar",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.SignInInfo(cmd.Context(), a.callOpts()...)
		if err != nil {
			return err
		}
		info := resp.Data
		signed := "no"
		if info.IsSigned {
			signed = "yes"
		}
		table := newTable(cmd.OutOrStdout(), "Signed today", "Streak", "Total days", "Today's reward")
		table.Append([]string{signed, fmt.Sprint(info.ContinueDays), fmt.Sprint(info.TotalDays), format.Amount(info.TodayReward)})
		table.Render()
		return nil
	}),
}

// noticesCmd 公告列表，已读状态只保存在本地
var noticesCmd = &cobra.Command{
	Use:   "notices",
	Short: "List platform notices",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		ctx := cmd.Context()
		resp, err := a.client.Notices(ctx, dto.NoticeQuery{BaseParams: pageParams(), Type: noticeTypeFlag}, a.callOpts()...)
		if err != nil {
			return err
		}

		settings := a.notices.Settings(ctx)
		list := resp.Data.Items
		if unreadOnlyFlag {
			list = a.notices.Unread(ctx, list)
		}

		now := time.Now()
		table := newTable(cmd.OutOrStdout(), "", "ID", "Type", "Title", "Published")
		for _, n := range list {
			if settings.Muted(n.Type) {
				continue
			}
			marker := "*"
			if a.notices.IsRead(ctx, n.ID) {
				marker = ""
			}
			table.Append([]string{marker, n.ID.String(), n.Type, n.Title, format.Timestamp(n.CreateTime, now)})
		}
		table.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "%d unread\n", a.notices.UnreadCount(ctx, resp.Data.Items))
		return nil
	}),
}

var noticeShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a notice and mark it read",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		resp, err := a.client.NoticeDetail(cmd.Context(), id, a.callOpts()...)
		if err != nil {
			return err
		}
		n := resp.Data
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s\n\n%s\n", n.Title, format.Timestamp(n.CreateTime, time.Now()), n.Content)
		return a.notices.MarkRead(cmd.Context(), id)
	}),
}

var noticeReadCmd = &cobra.Command{
	Use:   "read [id...]",
	Short: "Mark notices read",
	RunE: withApp(func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		if readAllFlag {
			resp, err := a.client.Notices(ctx, dto.NoticeQuery{BaseParams: pageParams(), Type: noticeTypeFlag}, a.callOpts()...)
			if err != nil {
				return err
			}
			return a.notices.MarkAllRead(ctx, resp.Data.Items)
		}
		ids := make([]common.ID, 0, len(args))
		for _, arg := range args {
			id, err := parseID(arg)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return a.notices.MarkRead(ctx, ids...)
	}),
}

func init() {
	signInCmd.AddCommand(signInInfoCmd)

	noticesCmd.Flags().StringVar(&noticeTypeFlag, "type", "", "notice type")
	noticesCmd.Flags().BoolVar(&unreadOnlyFlag, "unread", false, "only unread notices")
	addPageFlags(noticesCmd)

	noticeReadCmd.Flags().BoolVar(&readAllFlag, "all", false, "mark every notice on the page read")
	noticeReadCmd.Flags().StringVar(&noticeTypeFlag, "type", "", "notice type, with --all")
	addPageFlags(noticeReadCmd)
	noticesCmd.AddCommand(noticeShowCmd, noticeReadCmd)
}
