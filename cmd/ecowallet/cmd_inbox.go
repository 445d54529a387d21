package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/ecowallet-client/internal/service/inbox"
)

func (c *cli) newInboxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List inbox messages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			msgs, err := c.app.Inbox.LoadMessages(ctx, c.actingRole(ctx))
			if err != nil {
				return c.check(ctx, err)
			}
			return printYAML(cmd.OutOrStdout(), msgs)
		},
	}

	read := &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			status, err := c.app.Inbox.ReadMessage(ctx, c.actingRole(ctx), args[0])
			if err != nil {
				return c.check(ctx, err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}

	count := &cobra.Command{
		Use:   "count",
		Short: "Print the number of unread notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			n, err := c.app.Inbox.NotificationsCount(ctx, c.actingRole(ctx))
			if err != nil {
				return c.check(ctx, err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), n)
			return err
		},
	}

	var q inbox.QuestionInput
	ask := &cobra.Command{
		Use:   "ask",
		Short: "Send a question",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status, err := c.app.Inbox.AskQuestion(ctx, c.actingRole(ctx), q)
			if err != nil {
				return c.check(ctx, err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	ask.Flags().StringVar(&q.Subject, "subject", "", "subject")
	ask.Flags().StringVar(&q.Question, "question", "", "question text")

	var sup inbox.SupportInput
	support := &cobra.Command{
		Use:   "support",
		Short: "Contact support",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			status, err := c.app.Inbox.ContactSupport(ctx, c.actingRole(ctx), sup)
			if err != nil {
				return c.check(ctx, err)
			}
			return printStatus(cmd.OutOrStdout(), status)
		},
	}
	support.Flags().StringVar(&sup.Subject, "subject", "", "subject")
	support.Flags().StringVar(&sup.Message, "message", "", "message text")

	cmd.AddCommand(read, count, ask, support)
	return cmd
}
