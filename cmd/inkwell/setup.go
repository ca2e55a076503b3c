// ABOUTME: Cobra command for interactive first-run setup.
// ABOUTME: Launches the bubbletea login wizard and saves the API URL and session.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/tui"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Point inkwell at a blog and sign in",
	Long:  "Interactive wizard to configure the API URL and log in.",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	email := ""
	if globalSession.LoggedIn() {
		if u, err := globalClient.Me(cmd.Context()); err == nil {
			email = u.Email
		}
	}

	model := tui.NewLoginModel(globalConfig.API.URL, email)

	p := tea.NewProgram(model)
	result, err := p.Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := result.(tui.LoginModel)
	if !final.ShouldSave() {
		fmt.Println("Setup cancelled.")
		return nil
	}

	globalConfig.API.URL = final.APIURL()
	if res := final.Result(); res != nil {
		globalSession.Login(res.Token, res.User)
	}
	if err := saveSession(); err != nil {
		return err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		fmt.Println("Config saved successfully.")
	} else {
		fmt.Printf("Config saved to %s\n", configPath)
	}
	return nil
}
