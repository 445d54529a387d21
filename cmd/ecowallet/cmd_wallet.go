package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/wallet"
)

func (c *cli) newWalletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Show the wallet balance and waste logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := c.app.Wallet.LoadWallet(ctx, c.actingRole(ctx)); err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), c.app.Store.State().Wallet)
		},
	}

	cmd.AddCommand(
		c.newConvertCmd(),
		c.newConvertAllCmd(),
		c.newWithdrawCmd(),
		c.newFundCmd(),
		c.newVerifyCmd(),
		c.newBanksCmd(),
		c.newLogWasteCmd(),
	)
	return cmd
}

// walletMutation runs op and prints the refreshed wallet.
func (c *cli) walletMutation(cmd *cobra.Command, op func(role domain.Role) (domain.Status, error)) error {
	ctx := cmd.Context()
	status, err := op(c.actingRole(ctx))
	if err != nil {
		return c.check(ctx, err)
	}
	if err := printStatus(cmd.OutOrStdout(), status); err != nil {
		return err
	}
	return printYAML(cmd.OutOrStdout(), c.app.Store.State().Wallet)
}

func (c *cli) newConvertCmd() *cobra.Command {
	var in wallet.ConvertInput
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert recorded waste of one material into wallet balance",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.walletMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Wallet.ConvertItem(cmd.Context(), role, in)
			})
		},
	}
	cmd.Flags().StringVar(&in.Material, "material", "", "material name")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "weight to convert")
	cmd.Flags().StringVar(&in.ClientID, "client", "", "client id (agents only)")
	return cmd
}

func (c *cli) newConvertAllCmd() *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "convert-all",
		Short: "Convert every available material",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.walletMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Wallet.ConvertAll(cmd.Context(), role, clientID)
			})
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client id (agents only)")
	return cmd
}

func (c *cli) newWithdrawCmd() *cobra.Command {
	var in wallet.WithdrawInput
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Withdraw wallet balance to a bank account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.walletMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Wallet.Withdraw(cmd.Context(), role, in)
			})
		},
	}
	cmd.Flags().Float64Var(&in.Amount, "amount", 0, "amount")
	cmd.Flags().StringVar(&in.BankCode, "bank", "", "bank code (see `wallet banks`)")
	cmd.Flags().StringVar(&in.AccountNumber, "account", "", "account number")
	cmd.Flags().StringVar(&in.AccountName, "account-name", "", "account holder name")
	return cmd
}

func (c *cli) newFundCmd() *cobra.Command {
	var amount float64
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Start a wallet funding payment",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p, err := c.app.Wallet.Fund(ctx, c.actingRole(ctx), amount)
			if err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), p)
		},
	}
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount")
	return cmd
}

func (c *cli) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <reference>",
		Short: "Verify a funding payment by reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.walletMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Wallet.VerifyTransaction(cmd.Context(), role, args[0])
			})
		},
	}
}

func (c *cli) newBanksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banks",
		Short: "List supported payout banks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			banks, err := c.app.Wallet.Banks(ctx, c.actingRole(ctx))
			if err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), banks)
		},
	}
}

func (c *cli) newLogWasteCmd() *cobra.Command {
	var in wallet.LogWasteInput
	cmd := &cobra.Command{
		Use:   "log-waste",
		Short: "Record collected waste for a client (agents only)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status, err := c.app.Wallet.LogWaste(ctx, in)
			if err != nil {
				return c.check(ctx, err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	cmd.Flags().StringVar(&in.ClientID, "client", "", "client id")
	cmd.Flags().StringVar(&in.Material, "material", "", "material name")
	cmd.Flags().Float64Var(&in.Weight, "weight", 0, "weight")
	return cmd
}
