// ABOUTME: Admin-only CLI commands: list users and delete non-admin accounts.
// ABOUTME: The server enforces access too; these checks only fail fast.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/render"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Admin dashboard commands",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if !globalSession.IsAdmin() {
			return fmt.Errorf("admin access required")
		}
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users",
	Args:  cobra.NoArgs,
	RunE:  runAdminUsers,
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <user-id>",
	Short: "Delete a user and all their content",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteUser,
}

var (
	adminPage int
	adminYes  bool
)

func init() {
	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(adminUsersCmd, adminDeleteUserCmd)

	adminUsersCmd.Flags().IntVar(&adminPage, "page", 1, "Page number")
	adminDeleteUserCmd.Flags().BoolVarP(&adminYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	q := listing.NewQuery(config.DefaultUserPageSize).WithPage(adminPage)
	users := listing.NewController(globalClient.UserSource(), models.User.Key, q)
	users.Run(ctx, users.Start())
	if err := users.Err(); err != nil {
		return apiError(err, "Failed to fetch users")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-26s %-20s %-28s %-6s %6s  %s\n", "ID", "USER", "EMAIL", "ROLE", "POSTS", "JOINED")
	for _, u := range users.Items() {
		fmt.Fprintf(out, "%-26s %-20s %-28s %-6s %6s  %s\n", u.ID, u.Username, u.Email, u.Role, render.Count(u.PostCount), render.Date(u.CreatedAt))
	}
	printPager(out, users.Page(), users.TotalPages())
	return nil
}

func runAdminDeleteUser(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	u, err := globalClient.GetUser(ctx, args[0])
	if err != nil {
		return apiError(err, "User not found")
	}
	if !globalSession.CanDeleteUser(*u) {
		return fmt.Errorf("admin accounts cannot be deleted")
	}
	prompt := fmt.Sprintf("Delete %s and all their content?", u.Username)
	if !adminYes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), prompt) {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
		return nil
	}

	if err := globalClient.DeleteUser(ctx, u.ID); err != nil {
		return apiError(err, "Failed to delete user")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", u.Username)
	return nil
}
