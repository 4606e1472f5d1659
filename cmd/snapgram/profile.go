// ABOUTME: CLI commands for profiles and the follow graph.
// ABOUTME: Provides follow, profile [user] with follower lists, and the interactive profile editor.
package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/tui"
)

var followCmd = &cobra.Command{
	Use:   "follow <username>",
	Short: "Follow a user, or unfollow if already following",
	Args:  cobra.ExactArgs(1),
	RunE:  runFollow,
}

var profileCmd = &cobra.Command{
	Use:   "profile [username]",
	Short: "Show a profile (default: yours)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfile,
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit your profile interactively",
	Args:  cobra.NoArgs,
	RunE:  runProfileEdit,
}

// Flags
var (
	profileFollowers bool
	profileFollowing bool
)

func init() {
	rootCmd.AddCommand(followCmd)
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileEditCmd)

	profileCmd.Flags().BoolVar(&profileFollowers, "followers", false, "List followers")
	profileCmd.Flags().BoolVar(&profileFollowing, "following", false, "List followed users")
}

func runFollow(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	following, err := globalServices.Follows.ToggleFollow(user.Username, args[0])
	if err != nil {
		return explain(err)
	}
	if following {
		fmt.Printf("Now following @%s\n", args[0])
	} else {
		fmt.Printf("Unfollowed @%s\n", args[0])
	}
	return nil
}

func runProfile(cmd *cobra.Command, args []string) error {
	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		user, err := requireUser()
		if err != nil {
			return err
		}
		username = user.Username
	}

	p, err := globalServices.Profile(username)
	if err != nil {
		return explain(err)
	}

	name := p.User.FullName
	if p.User.Verified {
		name += " ✓"
	}
	fmt.Printf("@%s  %s\n", p.User.Username, name)
	if p.User.Bio != "" {
		fmt.Println(p.User.Bio)
	}
	fmt.Printf("\n%d posts  %d followers  %d following\n", p.User.Posts, p.Followers, p.Following)

	if profileFollowers {
		list, err := globalServices.Follows.Followers(username)
		if err != nil {
			return explain(err)
		}
		printNames("Followers", list)
	}
	if profileFollowing {
		list, err := globalServices.Follows.Following(username)
		if err != nil {
			return explain(err)
		}
		printNames("Following", list)
	}

	printGrid("Posts", p.Posts)
	printGrid("Reposts", p.Reposts)
	printGrid("Tagged", p.Tagged)
	return nil
}

func printNames(title string, names []string) {
	fmt.Printf("\n%s:\n", title)
	if len(names) == 0 {
		fmt.Println("  (none)")
		return
	}
	for _, n := range names {
		fmt.Printf("  @%s\n", n)
	}
}

func printGrid(title string, posts []models.Post) {
	if len(posts) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for _, p := range posts {
		caption := p.Caption
		if r := []rune(caption); len(r) > 50 {
			caption = string(r[:50]) + "…"
		}
		fmt.Printf("  [%s] %s  %s\n", p.ID, p.Image, strings.ReplaceAll(caption, "\n", " "))
	}
}

func runProfileEdit(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}

	save := func(_ context.Context, patch models.UserPatch) error {
		_, err := globalServices.Content.UpdateUser(user.Username, patch)
		return err
	}
	result, err := tea.NewProgram(tui.NewProfileModel(*user, save)).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	if !result.(tui.ProfileModel).Saved() {
		fmt.Println("Edit cancelled.")
		return nil
	}
	fmt.Println("Profile saved.")
	return nil
}
