package cmd

import (
	"fmt"
	"time"

	"collectibles/internal/entity/dto"
	"collectibles/internal/format"

	"github.com/spf13/cobra"
)

var (
	mobileFlag   string
	codeFlag     string
	passwordFlag string
	inviteFlag   string
	eventFlag    string

	realNameFlag string
	idCardFlag   string
	frontFlag    string
	backFlag     string
)

// loginCmd 手机号登录，账号不存在时服务端自动注册
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a mobile number and SMS code or password",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.CheckIn(cmd.Context(), dto.CheckInRequest{
			Mobile:     mobileFlag,
			Code:       codeFlag,
			Password:   passwordFlag,
			InviteCode: inviteFlag,
		})
		if err != nil {
			return err
		}
		user := resp.Data.UserInfo
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", user.Nickname, format.Phone(user.Mobile))
		return nil
	}),
}

// smsCmd 发送短信验证码
var smsCmd = &cobra.Command{
	Use:   "sms",
	Short: "Send an SMS verification code",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.SendSMS(cmd.Context(), dto.SMSRequest{Mobile: mobileFlag, Event: eventFlag})
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), resp.Msg, "code sent")
		return nil
	}),
}

// logoutCmd 退出登录，本地会话无论如何都会被清除
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the saved session",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		if _, err := a.client.Logout(cmd.Context(), a.callOpts()...); err != nil {
			a.log.WithError(err).Warn("logout_request_failed")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "logged out")
		return nil
	}),
}

// profileCmd 拉取并展示个人资料与余额
var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show the current user's profile and balances",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.Profile(cmd.Context(), a.callOpts()...)
		if err != nil {
			return err
		}
		u := resp.Data
		table := newTable(cmd.OutOrStdout(), "Field", "Value")
		table.Append([]string{"ID", u.ID.String()})
		table.Append([]string{"Nickname", u.Nickname})
		table.Append([]string{"Mobile", format.Phone(u.Mobile)})
		table.Append([]string{"Balance", format.Amount(u.Money)})
		table.Append([]string{"Service fee", format.Amount(u.ServiceFee)})
		table.Append([]string{"Static income", format.Amount(u.StaticIncome)})
		table.Append([]string{"Score", fmt.Sprint(u.Score)})
		table.Append([]string{"Real name", dto.RealNameStatus{Status: u.RealNameStatus}.StatusText()})
		table.Append([]string{"Invite code", u.InviteCode})
		if exp := a.session.ExpiresAt(cmd.Context()); !exp.IsZero() {
			table.Append([]string{"Session expires", format.Timestamp(exp, time.Now())})
		}
		table.Render()
		return nil
	}),
}

// realNameCmd 实名认证
var realNameCmd = &cobra.Command{
	Use:   "realname",
	Short: "Real-name verification",
}

var realNameStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show verification status",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.RealNameStatus(cmd.Context(), a.callOpts()...)
		if err != nil {
			return err
		}
		s := resp.Data
		table := newTable(cmd.OutOrStdout(), "Status", "Name", "ID card", "Reason")
		table.Append([]string{s.StatusText(), format.Name(s.RealName), format.IDCard(s.IDCard), s.Reason})
		table.Render()
		return nil
	}),
}

var realNameSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit name, ID card number and photo URLs",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.SubmitRealName(cmd.Context(), dto.RealNameRequest{
			RealName:    realNameFlag,
			IDCard:      idCardFlag,
			IDCardFront: frontFlag,
			IDCardBack:  backFlag,
		}, a.callOpts()...)
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), resp.Msg, "submitted, waiting for review")
		return nil
	}),
}

func init() {
	loginCmd.Flags().StringVar(&mobileFlag, "mobile", "", "mobile number")
	loginCmd.Flags().StringVar(&codeFlag, "code", "", "SMS verification code")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "login password")
	loginCmd.Flags().StringVar(&inviteFlag, "invite", "", "invite code for new accounts")
	loginCmd.MarkFlagsMutuallyExclusive("code", "password")

	smsCmd.Flags().StringVar(&mobileFlag, "mobile", "", "mobile number")
	smsCmd.Flags().StringVar(&eventFlag, "event", dto.SMSEventLogin, "SMS event (mobilelogin, register, resetpwd, changemobile)")

	realNameSubmitCmd.Flags().StringVar(&realNameFlag, "name", "", "legal name")
	realNameSubmitCmd.Flags().StringVar(&idCardFlag, "id-card", "", "18-digit ID card number")
	realNameSubmitCmd.Flags().StringVar(&frontFlag, "front", "", "URL of the ID card front photo")
	realNameSubmitCmd.Flags().StringVar(&backFlag, "back", "", "URL of the ID card back photo")
	realNameCmd.AddCommand(realNameStatusCmd, realNameSubmitCmd)
}
