// ABOUTME: CLI commands for signing in and out: login, signup, logout, and whoami.
// ABOUTME: The issued token and user are saved in the config file.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/api"
	"github.com/2389-research/inkwell/internal/validate"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in, sign up, and sign out",
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	Long:  "Log in and save the session. The password is prompted for when --password is not given.",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogin,
}

var authSignupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account",
	Args:  cobra.NoArgs,
	RunE:  runAuthSignup,
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved session",
	Args:  cobra.NoArgs,
	RunE:  runAuthLogout,
}

var authWhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in user",
	Args:  cobra.NoArgs,
	RunE:  runAuthWhoami,
}

var (
	authEmail    string
	authPassword string
	authUsername string
	authConfirm  string
)

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(authLoginCmd, authSignupCmd, authLogoutCmd, authWhoamiCmd)

	for _, c := range []*cobra.Command{authLoginCmd, authSignupCmd} {
		c.Flags().StringVar(&authEmail, "email", "", "Account email")
		c.Flags().StringVar(&authPassword, "password", "", "Account password")
	}
	authSignupCmd.Flags().StringVar(&authUsername, "username", "", "Username")
	authSignupCmd.Flags().StringVar(&authConfirm, "confirm", "", "Repeat the password")
}


func startSession(cmd *cobra.Command, res *api.AuthResult) error {
	globalSession.Login(res.Token, res.User)
	globalClient.SetToken(res.Token)
	if err := saveSession(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", res.User.Username)
	return nil
}

func runAuthLogin(cmd *cobra.Command, args []string) error {
	var err error
	password := authPassword
	if password == "" && authEmail != "" {
		password, err = newPasswordPrompt(cmd.InOrStdin(), cmd.OutOrStdout()).read("Password: ")
		if err != nil {
			return err
		}
	}
	creds, err := validate.Login(authEmail, password)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, err := globalClient.Login(ctx, creds)
	if err != nil {
		return apiError(err, "Login failed")
	}
	return startSession(cmd, res)
}

func runAuthSignup(cmd *cobra.Command, args []string) error {
	var err error
	password, confirmPassword := authPassword, authConfirm
	if password == "" && authEmail != "" {
		prompt := newPasswordPrompt(cmd.InOrStdin(), cmd.OutOrStdout())
		if password, err = prompt.read("Password: "); err != nil {
			return err
		}
		if confirmPassword, err = prompt.read("Confirm password: "); err != nil {
			return err
		}
	}
	reg, err := validate.Signup(authUsername, authEmail, password, confirmPassword)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	res, err := globalClient.Register(ctx, reg)
	if err != nil {
		return apiError(err, "Signup failed")
	}
	return startSession(cmd, res)
}

func runAuthLogout(cmd *cobra.Command, args []string) error {
	if !globalSession.LoggedIn() {
		fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
		return nil
	}
	name := globalSession.User.Username
	globalSession.Logout()
	if err := saveSession(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logged out %s.\n", name)
	return nil
}

func runAuthWhoami(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	u, err := globalClient.Me(ctx)
	if err != nil {
		return apiError(err, "Failed to load current user")
	}
	globalSession.UpdateUser(*u)
	if err := saveSession(); err != nil {
		return err
	}
	printUser(cmd.OutOrStdout(), *u)
	return nil
}
