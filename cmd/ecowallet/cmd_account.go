package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/ecowallet-client/internal/domain"
	"github.com/heartmarshall/ecowallet-client/internal/service/account"
)

// passwordEnv is read when --password is omitted.
const passwordEnv = "ECOWALLET_PASSWORD"

func (c *cli) newLoginCmd() *cobra.Command {
	var in account.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Role = c.flagRole()
			if in.Password == "" {
				in.Password = os.Getenv(passwordEnv)
			}

			status, err := c.app.Account.Login(cmd.Context(), in)
			if err != nil {
				return c.check(cmd.Context(), err)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", in.Email, in.Role)
			if err == nil && status.IsPending() {
				err = printStatus(cmd.OutOrStdout(), status)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password (or $"+passwordEnv+")")
	return cmd
}

func (c *cli) newRegisterCmd() *cobra.Command {
	var in account.RegisterInput

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			in.Role = c.flagRole()
			if in.Password == "" {
				in.Password = os.Getenv(passwordEnv)
			}

			status, err := c.app.Account.Register(cmd.Context(), in)
			if err != nil {
				return c.check(cmd.Context(), err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&in.Password, "password", "", "password (or $"+passwordEnv+")")
	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored sessions of both roles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Account.Logout(cmd.Context(), c.actingRole(cmd.Context())); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return err
		},
	}
}

func (c *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			role := c.actingRole(cmd.Context())
			if _, err := c.app.Account.Refresh(cmd.Context(), role); err != nil {
				return c.check(cmd.Context(), err)
			}
			st := c.app.Store.State()
			if role == domain.RoleUser {
				return printYAML(cmd.OutOrStdout(), st.User)
			}
			return printYAML(cmd.OutOrStdout(), st.Agent)
		},
	}

	var prof account.ProfileInput
	update := &cobra.Command{
		Use:   "update",
		Short: "Replace the profile fields",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Account.UpdateProfile(cmd.Context(), c.actingRole(cmd.Context()), prof)
			if err != nil {
				return c.check(cmd.Context(), err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	update.Flags().StringVar(&prof.FirstName, "first-name", "", "first name")
	update.Flags().StringVar(&prof.LastName, "last-name", "", "last name")
	update.Flags().StringVar(&prof.Email, "email", "", "email")
	update.Flags().StringVar(&prof.Phone, "phone", "", "phone")
	update.Flags().StringVar(&prof.Gender, "gender", "", "gender")

	var pw account.PasswordInput
	password := &cobra.Command{
		Use:   "password",
		Short: "Change the password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Account.UpdatePassword(cmd.Context(), c.actingRole(cmd.Context()), pw)
			if err != nil {
				return c.check(cmd.Context(), err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	password.Flags().StringVar(&pw.Current, "current", "", "current password")
	password.Flags().StringVar(&pw.New, "new", "", "new password")

	var loc domain.Location
	location := &cobra.Command{
		Use:   "location",
		Short: "Set the address and coordinates",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Account.UpdateLocation(cmd.Context(), c.actingRole(cmd.Context()), loc)
			if err != nil {
				return c.check(cmd.Context(), err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	location.Flags().StringVar(&loc.Country, "country", "", "country")
	location.Flags().StringVar(&loc.State, "state", "", "state")
	location.Flags().StringVar(&loc.City, "city", "", "city")
	location.Flags().StringVar(&loc.Street, "street", "", "street")
	location.Flags().StringVar(&loc.Zipcode, "zipcode", "", "zipcode")
	location.Flags().Float64Var(&loc.Lat, "lat", 0, "latitude")
	location.Flags().Float64Var(&loc.Long, "long", 0, "longitude")

	imageCmd := &cobra.Command{
		Use:   "image <url>",
		Short: "Set the profile image URL for this invocation's state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := c.actingRole(cmd.Context())
			c.app.Account.UpdateProfileImage(role, args[0])
			st := c.app.Store.State()
			if role == domain.RoleUser {
				return printYAML(cmd.OutOrStdout(), st.User.Profile)
			}
			return printYAML(cmd.OutOrStdout(), st.Agent.Profile)
		},
	}

	cmd.AddCommand(update, password, location, imageCmd)
	return cmd
}
