// ABOUTME: CLI commands for user profiles: show and edit.
// ABOUTME: Editing your own profile also refreshes the saved session name.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/models"
	"github.com/2389-research/inkwell/internal/validate"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show [user-id]",
	Short: "Show a profile and its latest posts (default: you)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileShow,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your username and bio",
	Args:  cobra.NoArgs,
	RunE:  runProfileEdit,
}

var (
	profilePage     int
	profileUsername string
	profileBio      string
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd, profileEditCmd)

	profileShowCmd.Flags().IntVar(&profilePage, "page", 1, "Page of the user's posts")
	profileEditCmd.Flags().StringVar(&profileUsername, "username", "", "New username")
	profileEditCmd.Flags().StringVar(&profileBio, "bio", "", "New bio")
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	id := globalSession.UserID()
	if len(args) == 1 {
		id = args[0]
	}
	if id == "" {
		return fmt.Errorf("no user given and not logged in - pass a user ID or run 'inkwell auth login'")
	}

	ctx, cancel := commandContext()
	defer cancel()

	u, err := globalClient.GetUser(ctx, id)
	if err != nil {
		return apiError(err, "User not found")
	}
	out := cmd.OutOrStdout()
	printUser(out, *u)

	q := listing.NewQuery(globalConfig.ProfilePageSize()).WithFilter(listing.AuthorFilter(id)).WithPage(profilePage)
	posts := listing.NewController(globalClient.PostSource(), models.Post.Key, q)
	posts.Run(ctx, posts.Start())
	if err := posts.Err(); err != nil {
		return apiError(err, "Failed to fetch posts")
	}
	fmt.Fprintf(out, "\nPosts by %s\n", u.Username)
	if len(posts.Items()) == 0 {
		fmt.Fprintln(out, "No posts yet.")
		return nil
	}
	for _, p := range posts.Items() {
		printPostSummary(out, p)
	}
	printPager(out, posts.Page(), posts.TotalPages())
	return nil
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	if err := requireLogin(); err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	current, err := globalClient.GetUser(ctx, globalSession.UserID())
	if err != nil {
		return apiError(err, "Failed to load profile")
	}
	in := models.ProfileInput{Username: current.Username, Bio: current.Bio}
	if cmd.Flags().Changed("username") {
		in.Username = profileUsername
	}
	if cmd.Flags().Changed("bio") {
		in.Bio = profileBio
	}
	in, err = validate.Profile(in)
	if err != nil {
		return err
	}

	u, err := globalClient.UpdateProfile(ctx, in)
	if err != nil {
		return apiError(err, "Failed to update profile")
	}
	globalSession.UpdateUser(*u)
	if err := saveSession(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
	return nil
}
