// ABOUTME: CLI command for the contact form.
// ABOUTME: Prints the server's acknowledgement on success.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/validate"
)

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the blog's owners",
	Args:  cobra.NoArgs,
	RunE:  runContact,
}

var (
	contactName    string
	contactEmail   string
	contactSubject string
	contactMessage string
)

func init() {
	rootCmd.AddCommand(contactCmd)

	contactCmd.Flags().StringVar(&contactName, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "Your email")
	contactCmd.Flags().StringVar(&contactSubject, "subject", "", "Subject")
	contactCmd.Flags().StringVar(&contactMessage, "message", "", "Message")
}

func runContact(cmd *cobra.Command, args []string) error {
	in, err := validate.Contact(models.ContactInput{
		Name:    contactName,
		Email:   contactEmail,
		Subject: contactSubject,
		Message: contactMessage,
	})
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	msg, err := globalClient.SendContact(ctx, in)
	if err != nil {
		return apiError(err, "Failed to send message")
	}
	if msg == "" {
		msg = "Message sent."
	}
	fmt.Fprintln(cmd.OutOrStdout(), msg)
	return nil
}
