package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/insurance"
)

func (c *cli) newInsuranceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insurance",
		Short: "Show the current insurance subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if _, err := c.app.Insurance.LoadInsurance(ctx, c.actingRole(ctx)); err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), c.app.Store.State().Insurance)
		},
	}

	plans := &cobra.Command{
		Use:   "plans",
		Short: "List insurance plans",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			list, err := c.app.Insurance.Plans(ctx, c.actingRole(ctx))
			if err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), list)
		},
	}

	var buy insurance.BuyInput
	buyCmd := &cobra.Command{
		Use:   "buy",
		Short: "Subscribe to a plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.insuranceMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Insurance.BuyInsurance(cmd.Context(), role, buy)
			})
		},
	}
	buyCmd.Flags().StringVar(&buy.PlanID, "plan", "", "plan id")
	buyCmd.Flags().StringVar(&buy.ClientID, "client", "", "client id (agents only)")

	var cancelClient string
	cancel := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel the current subscription",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.insuranceMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Insurance.CancelInsurance(cmd.Context(), role, cancelClient)
			})
		},
	}
	cancel.Flags().StringVar(&cancelClient, "client", "", "client id (agents only)")

	var centre insurance.CareCentreInput
	centreCmd := &cobra.Command{
		Use:   "centre",
		Short: "Choose the care centre of the current plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.insuranceMutation(cmd, func(role domain.Role) (domain.Status, error) {
				return c.app.Insurance.SetCareCentre(cmd.Context(), role, centre)
			})
		},
	}
	centreCmd.Flags().StringVar(&centre.CentreID, "centre", "", "care centre id")
	centreCmd.Flags().StringVar(&centre.ClientID, "client", "", "client id (agents only)")

	cmd.AddCommand(plans, buyCmd, cancel, centreCmd)
	return cmd
}

func (c *cli) insuranceMutation(cmd *cobra.Command, op func(role domain.Role) (domain.Status, error)) error {
	ctx := cmd.Context()
	status, err := op(c.actingRole(ctx))
	if err != nil {
		return c.check(ctx, err)
	}
	if err := printStatus(cmd.OutOrStdout(), status); err != nil {
		return err
	}
	return printYAML(cmd.OutOrStdout(), c.app.Store.State().Insurance.Insurance)
}
