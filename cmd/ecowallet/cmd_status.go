package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/state"
)

type statusReport struct {
	Phase     string                `yaml:"phase"`
	Role      domain.Role           `yaml:"role"`
	LoggedIn  bool                  `yaml:"logged_in"`
	ExpiresAt *time.Time            `yaml:"expires_at,omitempty"`
	Expired   bool                  `yaml:"expired,omitempty"`
	Profile   any                   `yaml:"profile,omitempty"`
	Wallet    *state.WalletState    `yaml:"wallet,omitempty"`
	Insurance *state.InsuranceState `yaml:"insurance,omitempty"`
	Errors    map[string][]string   `yaml:"errors,omitempty"`
	Bootstrap string                `yaml:"bootstrap_error,omitempty"`
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Resume the stored session and print session, profile and error logs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			phase, runErr := c.app.Start(cmd.Context())

			st := c.app.Store.State()
			rep := statusReport{
				Phase:     phase.String(),
				Role:      st.Session.Role,
				LoggedIn:  st.Session.LoggedIn(),
				ExpiresAt: st.Session.ExpiresAt,
				Expired:   st.Session.Expired(time.Now()),
			}
			if runErr != nil {
				rep.Bootstrap = runErr.Error()
			}
			if rep.LoggedIn {
				if st.Session.Role == domain.RoleUser {
					rep.Profile = st.User.Profile
					rep.Insurance = &st.Insurance
				} else {
					rep.Profile = st.Agent.Profile
				}
				rep.Wallet = &st.Wallet
			}

			for _, s := range []domain.Slice{domain.SliceUser, domain.SliceAgent, domain.SliceWallet, domain.SliceInsurance} {
				if errs := st.Errors(s); len(errs) > 0 {
					if rep.Errors == nil {
						rep.Errors = make(map[string][]string)
					}
					rep.Errors[s.String()] = errs
				}
			}

			return printYAML(cmd.OutOrStdout(), rep)
		},
	}
}
