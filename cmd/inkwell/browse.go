// ABOUTME: Cobra command that opens the interactive feed.
// ABOUTME: Starting position comes from flags, a deep link, or the last saved link.
package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/inkwell/internal/config"
	"github.com/2389-research/inkwell/internal/listing"
	"github.com/2389-research/inkwell/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the feed interactively",
	Long: `Open the terminal feed. Start from a shared deep link with --link
('page=2&tag=go'), or pick up where you left off with --resume.
Flags given explicitly override the link.`,
	RunE: runBrowse,
}

var (
	browsePage   int
	browseSearch string
	browseTag    string
	browseAuthor string
	browseLink   string
	browseResume bool
)

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().IntVar(&browsePage, "page", 1, "Page to open")
	browseCmd.Flags().StringVar(&browseSearch, "search", "", "Search text")
	browseCmd.Flags().StringVar(&browseTag, "tag", "", "Only posts with this tag")
	browseCmd.Flags().StringVar(&browseAuthor, "author", "", "Only posts by this author ID")
	browseCmd.Flags().StringVar(&browseLink, "link", "", "Deep link to open, e.g. 'page=2&tag=go'")
	browseCmd.Flags().BoolVar(&browseResume, "resume", false, "Open the last saved deep link")
	browseCmd.MarkFlagsMutuallyExclusive("link", "resume")
}

// startQuery builds the feed's initial query from a link and the flags the user set.
func startQuery(cmd *cobra.Command, link string, pageSize int) listing.Query {
	q := listing.Decode(link, pageSize)
	flags := cmd.Flags()
	if flags.Changed("search") {
		q = q.WithFilter(listing.SearchFilter(browseSearch))
	}
	if flags.Changed("tag") {
		q = q.WithFilter(listing.TagFilter(browseTag))
	}
	if flags.Changed("author") {
		q = q.WithFilter(listing.AuthorFilter(browseAuthor))
	}
	if flags.Changed("page") {
		q = q.WithPage(browsePage)
	}
	return q
}

func runBrowse(cmd *cobra.Command, args []string) error {
	link := browseLink
	if browseResume {
		saved, err := config.LoadLastLink()
		if err != nil {
			return fmt.Errorf("failed to read last link: %w", err)
		}
		link = saved
	}

	ctx, cancel := commandContext()
	defer cancel()

	env := &tui.Env{
		Ctx:     ctx,
		Client:  globalClient,
		Session: globalSession,
		Log:     globalLogger,
		Sizes: tui.PageSizes{
			Feed:     globalConfig.FeedPageSize(),
			Profile:  globalConfig.ProfilePageSize(),
			Comments: globalConfig.CommentPageSize(),
			Users:    config.DefaultUserPageSize,
		},
		SaveLink:    config.SaveLastLink,
		SaveSession: saveSession,
	}

	feed := tui.NewFeedModel(env, startQuery(cmd, link, env.Sizes.Feed))
	p := tea.NewProgram(tui.NewApp(env, feed), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	final := feed.Link()
	if err := config.SaveLastLink(final); err != nil {
		globalLogger.WithError(err).Warn("failed to save last link")
	}
	if final != "" {
		fmt.Printf("Resume with: inkwell browse --link '%s'\n", final)
	}
	return nil
}
