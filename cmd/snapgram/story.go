// ABOUTME: CLI commands for stories and story playback.
// ABOUTME: Provides story list/create plus the interactive viewer and a headless player.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/playback"
	"github.com/2389-research/snapgram/internal/tui"
)

var storyCmd = &cobra.Command{
	Use:   "story",
	Short: "Manage and watch stories",
}

var storyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stories, one per user",
	Args:  cobra.NoArgs,
	RunE:  runStoryList,
}

var storyCreateCmd = &cobra.Command{
	Use:   "create <image>",
	Short: "Add an image to your story",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoryCreate,
}

var storyViewCmd = &cobra.Command{
	Use:   "view [username]",
	Short: "Watch stories in the terminal viewer",
	Long:  "Open the story viewer at the given user's story (default: the first) and continue through the rest.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoryView,
}

var storyPlayCmd = &cobra.Command{
	Use:   "play [username]",
	Short: "Play stories without a UI, printing each item as it is shown",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStoryPlay,
}

func init() {
	rootCmd.AddCommand(storyCmd)
	storyCmd.AddCommand(storyListCmd, storyCreateCmd, storyViewCmd, storyPlayCmd)
}

func runStoryList(cmd *cobra.Command, args []string) error {
	stories, err := globalServices.Stories.ListStories()
	if err != nil {
		return explain(err)
	}
	if len(stories) == 0 {
		fmt.Println("No stories found.")
		return nil
	}
	for i, s := range stories {
		marker := "●"
		if s.Viewed {
			marker = "○"
		}
		fmt.Printf("%d. %s @%s (%d items)\n", i+1, marker, s.OwnerUsername, len(s.Items))
	}
	return nil
}

func runStoryCreate(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	if err := globalServices.Stories.SaveStory(models.NewStory(user, args[0])); err != nil {
		return fmt.Errorf("failed to save story: %w", err)
	}
	fmt.Printf("Story updated for @%s\n", user.Username)
	return nil
}

func newEngine() *playback.Engine {
	return playback.NewEngine(globalServices.Stories,
		playback.WithItemDuration(globalConfig.ItemDuration()),
		playback.WithTickInterval(globalConfig.TickInterval()),
		playback.WithLogger(globalLogger))
}

// storyStart returns the stories and the index to open, honoring an optional username.
func storyStart(args []string) ([]models.Story, int, error) {
	stories, err := globalServices.Stories.ListStories()
	if err != nil {
		return nil, 0, explain(err)
	}
	if len(stories) == 0 {
		return nil, 0, fmt.Errorf("no stories to show")
	}
	if len(args) == 0 {
		return stories, 0, nil
	}
	for i, s := range stories {
		if s.OwnerUsername == args[0] {
			return stories, i, nil
		}
	}
	return nil, 0, fmt.Errorf("@%s has no story", args[0])
}

func runStoryView(cmd *cobra.Command, args []string) error {
	stories, index, err := storyStart(args)
	if err != nil {
		return err
	}
	model, err := tui.NewViewerModel(newEngine(), stories, index)
	if err != nil {
		return fmt.Errorf("failed to open story: %w", err)
	}
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func runStoryPlay(cmd *cobra.Command, args []string) error {
	stories, index, err := storyStart(args)
	if err != nil {
		return err
	}
	engine := newEngine()
	if err := engine.Open(stories, index); err != nil {
		return fmt.Errorf("failed to open story: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("Playing %s of stories\n", playback.Duration(stories[index:], globalConfig.ItemDuration()))
	last := playback.Status{StoryIndex: -1}
	show := func(st playback.Status) {
		if st.State != playback.Playing || (st.StoryIndex == last.StoryIndex && st.ItemIndex == last.ItemIndex) {
			return
		}
		last = st
		s, item, _ := engine.Current()
		fmt.Printf("@%s %d/%d  %s [%s]\n", s.OwnerUsername, st.ItemIndex+1, len(s.Items), item.Image, item.Timestamp)
	}
	show(engine.Status())

	if err := playback.Run(ctx, engine, show); err != nil && ctx.Err() == nil {
		return err
	}
	fmt.Println("Done.")
	return nil
}
