// ABOUTME: Follow graph stored as following/followers adjacency sets per username.
// ABOUTME: Every toggle rewrites both halves of the pair in one read-modify-write.
package social

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/2389-research/snapgram/internal/models"
	"github.com/2389-research/snapgram/internal/storage"
)

// FollowGraph owns the follow-data document.
type FollowGraph struct {
	port   storage.Port
	logger *zap.Logger
}

// NewFollowGraph creates a follow graph over port. A nil logger discards output.
func NewFollowGraph(port storage.Port, logger *zap.Logger) *FollowGraph {
	return &FollowGraph{port: port, logger: orNop(logger)}
}

// ToggleFollow flips whether actor follows target and reports the new state.
func (g *FollowGraph) ToggleFollow(actor, target string) (bool, error) {
	if actor == "" {
		return false, fmt.Errorf("toggle follow without a current user: %w", ErrInvariant)
	}
	if target == "" {
		return false, fmt.Errorf("toggle follow without a target: %w", ErrInvariant)
	}
	if actor == target {
		return false, fmt.Errorf("cannot follow yourself: %w", ErrInvariant)
	}

	data, err := g.load()
	if err != nil {
		return false, err
	}
	a := entryFor(data, actor)
	t := entryFor(data, target)

	following := !contains(a.Following, target)
	if following {
		a.Following = addUnique(a.Following, target)
		t.Followers = addUnique(t.Followers, actor)
	} else {
		a.Following = remove(a.Following, target)
		t.Followers = remove(t.Followers, actor)
	}
	data[actor] = a
	data[target] = t

	if err := save(g.port, KeyFollowData, data); err != nil {
		return false, err
	}
	g.logger.Debug("follow toggled",
		zap.String("actor", actor),
		zap.String("target", target),
		zap.Bool("following", following))
	return following, nil
}

// IsFollowing reports whether actor currently follows target.
func (g *FollowGraph) IsFollowing(actor, target string) (bool, error) {
	data, err := g.load()
	if err != nil {
		return false, err
	}
	return contains(data[actor].Following, target), nil
}

// Followers returns the usernames following username.
func (g *FollowGraph) Followers(username string) ([]string, error) {
	data, err := g.load()
	if err != nil {
		return nil, err
	}
	return data[username].Followers, nil
}

// Following returns the usernames username follows.
func (g *FollowGraph) Following(username string) ([]string, error) {
	data, err := g.load()
	if err != nil {
		return nil, err
	}
	return data[username].Following, nil
}

// Counts derives follower and following counts from the relation itself.
func (g *FollowGraph) Counts(username string) (followers, following int, err error) {
	data, err := g.load()
	if err != nil {
		return 0, 0, err
	}
	e := data[username]
	return len(e.Followers), len(e.Following), nil
}

func (g *FollowGraph) load() (map[string]models.FollowEntry, error) {
	data := map[string]models.FollowEntry{}
	if _, err := load(g.port, KeyFollowData, &data); err != nil {
		return nil, err
	}
	if data == nil {
		data = map[string]models.FollowEntry{}
	}
	return data, nil
}

func entryFor(data map[string]models.FollowEntry, username string) models.FollowEntry {
	e := data[username]
	if e.Following == nil {
		e.Following = []string{}
	}
	if e.Followers == nil {
		e.Followers = []string{}
	}
	return e
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func addUnique(list []string, s string) []string {
	if contains(list, s) {
		return list
	}
	return append(list, s)
}

func remove(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}
