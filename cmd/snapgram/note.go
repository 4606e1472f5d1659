// ABOUTME: CLI commands for the notes feed.
// ABOUTME: Provides note add and note list.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/2389-research/snapgram/internal/models"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Share and read short notes",
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Share a note of up to 60 characters",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runNoteAdd,
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, newest first",
	Args:  cobra.NoArgs,
	RunE:  runNoteList,
}

func init() {
	rootCmd.AddCommand(noteCmd)
	noteCmd.AddCommand(noteAddCmd, noteListCmd)
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	note := models.NewNote(user.Username, user.Avatar, strings.Join(args, " "))
	if err := globalServices.Notes.Add(note); err != nil {
		return fmt.Errorf("failed to share note: %w", err)
	}
	fmt.Printf("Note shared: %s\n", note.Text)
	return nil
}

func runNoteList(cmd *cobra.Command, args []string) error {
	notes, err := globalServices.Notes.List()
	if err != nil {
		return explain(err)
	}
	if len(notes) == 0 {
		fmt.Println("No notes yet.")
		return nil
	}
	for _, n := range notes {
		fmt.Printf("@%s [%s] %s\n", n.Username, time.UnixMilli(n.Timestamp).Format("Jan 2 15:04"), n.Text)
	}
	return nil
}
