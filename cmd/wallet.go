package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"collectibles/internal/api"
	"collectibles/internal/entity/dto"
	"collectibles/internal/format"

	"github.com/spf13/cobra"
)

var (
	accountFlag     string
	amountFlag      string
	screenshotFlag  string
	screenshotFile  string
	statusFlag      string
	balanceFlag     string
	payPasswordFlag string
	toMobileFlag    string
	remarkFlag      string
)

// rechargeCmd 线下充值
var rechargeCmd = &cobra.Command{
	Use:   "recharge",
	Short: "Offline recharge",
}

var rechargeAccountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List the platform's receiving accounts",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.CompanyAccounts(cmd.Context(), a.callOpts()...)
		if err != nil {
			return err
		}
		table := newTable(cmd.OutOrStdout(), "ID", "Type", "Bank", "Account name", "Account no", "Remark")
		for _, acc := range resp.Data {
			table.Append([]string{acc.ID.String(), acc.Type, acc.BankName, acc.AccountName, acc.AccountNo, acc.Remark})
		}
		table.Render()
		return nil
	}),
}

var rechargeSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a recharge order, optionally with a payment screenshot",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		accountID, err := parseID(accountFlag)
		if err != nil {
			return err
		}

		req := dto.RechargeRequest{
			CompanyAccountID: accountID,
			Amount:           amountFlag,
			Screenshot:       screenshotFlag,
		}
		// 先做本地校验，避免无效输入产生孤立的上传文件
		if err := api.CheckRecharge(req); err != nil {
			return err
		}

		if screenshotFile != "" {
			f, err := os.Open(screenshotFile)
			if err != nil {
				return err
			}
			defer f.Close()
			uploaded, err := a.client.UploadImage(cmd.Context(), filepath.Base(screenshotFile), f, a.callOpts()...)
			if err != nil {
				return err
			}
			req.Screenshot = uploaded.Data.URL
		}

		resp, err := a.client.SubmitRecharge(cmd.Context(), req, a.callOpts()...)
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), resp.Msg, "recharge submitted")
		return nil
	}),
}

var rechargeOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List recharge orders",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.RechargeOrders(cmd.Context(), dto.RecordQuery{BaseParams: pageParams(), Status: statusFlag}, a.callOpts()...)
		if err != nil {
			return err
		}
		now := time.Now()
		table := newTable(cmd.OutOrStdout(), "Order no", "Amount", "Status", "Created")
		for _, o := range resp.Data.Items {
			table.Append([]string{o.OrderNo, format.Amount(o.Money), o.StatusText, format.Timestamp(o.CreateTime, now)})
		}
		table.Render()
		fmt.Fprintf(cmd.OutOrStdout(), "page %d/%d, %d total\n", resp.Data.Page, resp.Data.LastPage, resp.Data.Total)
		return nil
	}),
}

// withdrawCmd 提现到已绑定的收款账户
var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Withdraw to one of your payment accounts",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		accountID, err := parseID(accountFlag)
		if err != nil {
			return err
		}
		resp, err := a.client.SubmitWithdraw(cmd.Context(), dto.WithdrawRequest{
			PaymentAccountID: accountID,
			Amount:           amountFlag,
			PayPassword:      payPasswordFlag,
			BalanceType:      balanceFlag,
		}, a.callOpts()...)
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), resp.Msg, "withdrawal submitted")
		return nil
	}),
}

var withdrawRecordsCmd = &cobra.Command{
	Use:   "records",
	Short: "List withdrawal records",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.WithdrawRecords(cmd.Context(), dto.RecordQuery{BaseParams: pageParams(), Status: statusFlag}, a.callOpts()...)
		if err != nil {
			return err
		}
		now := time.Now()
		table := newTable(cmd.OutOrStdout(), "Order no", "Amount", "Fee", "Received", "Status", "Created")
		for _, r := range resp.Data.Items {
			table.Append([]string{
				r.OrderNo,
				format.Amount(r.Money),
				format.Amount(r.Fee),
				format.Amount(r.ActualMoney),
				r.StatusText,
				format.Timestamp(r.CreateTime, now),
			})
		}
		table.Render()
		return nil
	}),
}

// transferCmd 余额转账
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Transfer balance to another user by mobile number",
	RunE: withApp(func(cmd *cobra.Command, _ []string, a *app) error {
		resp, err := a.client.Transfer(cmd.Context(), dto.TransferRequest{
			ToMobile:    toMobileFlag,
			Amount:      amountFlag,
			PayPassword: payPasswordFlag,
			Remark:      remarkFlag,
		}, a.callOpts()...)
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), resp.Msg, "transfer complete")
		return nil
	}),
}

func withdrawUsage() string {
	rule, _ := api.WithdrawRule(dto.BalanceMain)
	return fmt.Sprintf("amount, at least %s", rule.Min.String())
}

func init() {
	rechargeSubmitCmd.Flags().StringVar(&accountFlag, "account", "", "receiving account ID from 'recharge accounts'")
	rechargeSubmitCmd.Flags().StringVar(&amountFlag, "amount", "", "amount paid")
	rechargeSubmitCmd.Flags().StringVar(&screenshotFlag, "screenshot", "", "URL of an uploaded payment screenshot")
	rechargeSubmitCmd.Flags().StringVar(&screenshotFile, "screenshot-file", "", "local image to upload as the payment screenshot")
	rechargeSubmitCmd.MarkFlagsMutuallyExclusive("screenshot", "screenshot-file")

	rechargeOrdersCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status")
	addPageFlags(rechargeOrdersCmd)
	rechargeCmd.AddCommand(rechargeAccountsCmd, rechargeSubmitCmd, rechargeOrdersCmd)

	withdrawCmd.Flags().StringVar(&accountFlag, "account", "", "payment account ID")
	withdrawCmd.Flags().StringVar(&amountFlag, "amount", "", withdrawUsage())
	withdrawCmd.Flags().StringVar(&payPasswordFlag, "pay-password", "", "6-digit pay password")
	withdrawCmd.Flags().StringVar(&balanceFlag, "balance", dto.BalanceMain, "balance to draw from (money, static_income)")

	withdrawRecordsCmd.Flags().StringVar(&statusFlag, "status", "", "filter by status")
	addPageFlags(withdrawRecordsCmd)
	withdrawCmd.AddCommand(withdrawRecordsCmd)

	transferCmd.Flags().StringVar(&toMobileFlag, "to", "", "recipient's mobile number")
	transferCmd.Flags().StringVar(&amountFlag, "amount", "", "amount to transfer")
	transferCmd.Flags().StringVar(&payPasswordFlag, "pay-password", "", "6-digit pay password")
	transferCmd.Flags().StringVar(&remarkFlag, "remark", "", "optional note")
}
