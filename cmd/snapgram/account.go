// ABOUTME: CLI commands for store setup and session identity.
// ABOUTME: Provides init, login, and whoami.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/2389-research/snapgram/internal/social"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed the local store",
	Long: `Write the demo users, posts, stories, and notes. Existing data is kept and unreadable
seeded documents are restored.

--reset <key> replaces one stored document with its default, for example
'snapgram init --reset likedPosts'. Anything stored under that key is lost.`,
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Set the acting user",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the acting user",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

var flagResetKey string

func init() {
	initCmd.Flags().StringVar(&flagResetKey, "reset", "", "Replace the named stored document with its default")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if flagResetKey != "" {
		if err := globalServices.Reset(flagResetKey, social.DefaultSeed()); err != nil {
			return fmt.Errorf("failed to reset %s: %w", flagResetKey, err)
		}
		fmt.Printf("Reset %s to its default\n", flagResetKey)
	}

	// The root pre-run hook has already seeded; report what is there.
	users, err := globalServices.Content.ListUsers()
	if err != nil {
		return explain(err)
	}
	posts, err := globalServices.Content.ListPosts()
	if err != nil {
		return explain(err)
	}
	stories, err := globalServices.Stories.ListStories()
	if err != nil {
		return explain(err)
	}

	where := "memory (ephemeral)"
	if !flagEphemeral {
		path, err := globalConfig.GetDBPath()
		if err != nil {
			return err
		}
		where = path
	}
	fmt.Printf("Store ready at %s\n", where)
	fmt.Printf("  %d users, %d posts, %d stories\n", len(users), len(posts), len(stories))
	return nil
}

func runLogin(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := globalServices.Session.Login(name); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	if _, err := globalServices.Content.GetUser(name); err != nil {
		fmt.Printf("Logged in as %s (no profile record yet)\n", name)
		return nil
	}
	fmt.Printf("Logged in as %s\n", name)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	fmt.Printf("@%s (%s)\n", user.Username, user.FullName)
	return nil
}
