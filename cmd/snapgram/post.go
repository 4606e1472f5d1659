// ABOUTME: CLI commands for posts and engagement.
// ABOUTME: Provides post create/list/show/edit/delete/comment/like/save/repost plus liked and saved lists.
package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/social"
)

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Manage posts",
	Long:  "Create, browse, edit, and react to posts.",
}

var postCreateCmd = &cobra.Command{
	Use:   "create <image>",
	Short: "Publish a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostCreate,
}

var postListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the feed",
	Args:  cobra.NoArgs,
	RunE:  runPostList,
}

var postShowCmd = &cobra.Command{
	Use:   "show <post-id>",
	Short: "Show a post with its comments",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostShow,
}

var postEditCmd = &cobra.Command{
	Use:   "edit <post-id>",
	Short: "Change a post's caption, location, or image",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostEdit,
}

var postDeleteCmd = &cobra.Command{
	Use:   "delete <post-id>",
	Short: "Delete one of your posts",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostDelete,
}

var postCommentCmd = &cobra.Command{
	Use:   "comment <post-id> <text>",
	Short: "Comment on a post",
	Args:  cobra.ExactArgs(2),
	RunE:  runPostComment,
}

var postLikeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Like or unlike a post",
	Args:  cobra.ExactArgs(1),
	RunE:  runPostLike,
}

var postSaveCmd = &cobra.Command{
	Use:   "save <post-id>",
	Short: "Save or unsave a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPostToggle(args[0], "Saved", "Unsaved", globalServices.Engagement.ToggleSave)
	},
}

var postRepostCmd = &cobra.Command{
	Use:   "repost <post-id>",
	Short: "Repost a post to your profile, or undo it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPostToggle(args[0], "Reposted", "Removed repost of", globalServices.Engagement.ToggleRepost)
	},
}

var likedCmd = &cobra.Command{
	Use:   "liked",
	Short: "List posts you liked",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPostSet(globalServices.Engagement.Liked)
	},
}

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "List posts you saved",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPostSet(globalServices.Engagement.Saved)
	},
}

// Flags
var (
	postCaption  string
	postLocation string
	postImage    string
	postLimit    int
	postUser     string
)

func init() {
	rootCmd.AddCommand(postCmd)
	rootCmd.AddCommand(likedCmd)
	rootCmd.AddCommand(savedCmd)
	postCmd.AddCommand(postCreateCmd, postListCmd, postShowCmd, postEditCmd, postDeleteCmd,
		postCommentCmd, postLikeCmd, postSaveCmd, postRepostCmd)

	postCreateCmd.Flags().StringVar(&postCaption, "caption", "", "Post caption")
	postCreateCmd.Flags().StringVar(&postLocation, "location", "", "Location label")

	postEditCmd.Flags().StringVar(&postCaption, "caption", "", "New caption")
	postEditCmd.Flags().StringVar(&postLocation, "location", "", "New location")
	postEditCmd.Flags().StringVar(&postImage, "image", "", "New image")

	postListCmd.Flags().IntVar(&postLimit, "limit", 10, "Maximum number of posts to show")
	postListCmd.Flags().StringVar(&postUser, "user", "", "Only posts by this user")
}

func runPostCreate(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	post := models.NewPost(user, args[0], postCaption, postLocation)
	if err := globalServices.Content.CreatePost(post); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	fmt.Printf("Post created (ID: %s)\n", post.ID)
	return nil
}

func runPostList(cmd *cobra.Command, args []string) error {
	var posts []models.Post
	var err error
	if postUser != "" {
		posts, err = globalServices.Content.UserPosts(postUser)
	} else {
		posts, err = globalServices.Content.ListPosts()
	}
	if errors.Is(err, social.ErrCorrupt) {
		globalLogger.Warn("feed unreadable, showing nothing", zap.Error(err))
		posts, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}
	if postLimit > 0 && len(posts) > postLimit {
		posts = posts[:postLimit]
	}
	for _, post := range posts {
		printPost(post)
	}
	return nil
}

func runPostShow(cmd *cobra.Command, args []string) error {
	post, err := globalServices.Content.GetPost(args[0])
	if err != nil {
		return explain(err)
	}
	printPost(*post)
	for _, c := range post.Comments {
		fmt.Printf("  @%s: %s (%s)\n", c.AuthorUsername, c.Text, c.Timestamp)
	}
	return nil
}

func runPostEdit(cmd *cobra.Command, args []string) error {
	var patch models.PostPatch
	if cmd.Flags().Changed("caption") {
		patch.Caption = &postCaption
	}
	if cmd.Flags().Changed("location") {
		patch.Location = &postLocation
	}
	if cmd.Flags().Changed("image") {
		patch.Image = &postImage
	}
	if patch == (models.PostPatch{}) {
		return fmt.Errorf("nothing to change - pass --caption, --location, or --image")
	}

	post, err := globalServices.Content.UpdatePost(args[0], patch)
	if err != nil {
		return explain(err)
	}
	fmt.Printf("Post %s updated\n", post.ID)
	return nil
}

func runPostDelete(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	post, err := globalServices.Content.GetPost(args[0])
	if err != nil {
		return explain(err)
	}
	if post.OwnerUsername != user.Username {
		return fmt.Errorf("post %s belongs to @%s", post.ID, post.OwnerUsername)
	}
	if err := globalServices.Content.DeletePost(post.ID); err != nil {
		return explain(err)
	}
	fmt.Printf("Post %s deleted\n", post.ID)
	return nil
}

func runPostComment(cmd *cobra.Command, args []string) error {
	text := strings.TrimSpace(args[1])
	if text == "" {
		return fmt.Errorf("comment text is required")
	}
	user, err := requireUser()
	if err != nil {
		return err
	}
	if err := globalServices.Content.AddComment(args[0], models.NewComment(user, text)); err != nil {
		return explain(err)
	}
	fmt.Printf("Comment added to %s\n", args[0])
	return nil
}

func runPostLike(cmd *cobra.Command, args []string) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	liked, likes, err := globalServices.Engagement.ToggleLike(user.Username, args[0])
	if err != nil {
		return explain(err)
	}
	if liked {
		fmt.Printf("Liked %s (%d likes)\n", args[0], likes)
	} else {
		fmt.Printf("Unliked %s (%d likes)\n", args[0], likes)
	}
	return nil
}

func runPostToggle(postID, on, off string, toggle func(username, postID string) (bool, error)) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	member, err := toggle(user.Username, postID)
	if err != nil {
		return explain(err)
	}
	if member {
		fmt.Printf("%s %s\n", on, postID)
	} else {
		fmt.Printf("%s %s\n", off, postID)
	}
	return nil
}

func runPostSet(list func(username string) ([]models.Post, error)) error {
	user, err := requireUser()
	if err != nil {
		return err
	}
	posts, err := list(user.Username)
	if err != nil {
		return explain(err)
	}
	if len(posts) == 0 {
		fmt.Println("No posts found.")
		return nil
	}
	for _, post := range posts {
		printPost(post)
	}
	return nil
}

func printPost(post models.Post) {
	fmt.Printf("--- @%s [%s] (ID: %s)", post.OwnerUsername, post.Timestamp, post.ID)
	if post.Location != "" {
		fmt.Printf(" at %s", post.Location)
	}
	fmt.Printf("\n%s\n%s\n♥ %d  💬 %d\n\n", post.Image, post.Caption, post.Likes, len(post.Comments))
}
