package admin

import (
	"context"
	"fmt"
	"sort"

	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/features/users"
	"github.com/xyz-asif/lostfound/internal/pkg/logger"
)

// PostModeration is the post surface the dashboard drives.
type PostModeration interface {
	List(ctx context.Context, status posts.Status) ([]posts.Post, error)
	CountByStatus(ctx context.Context, status posts.Status) (int64, error)
	ToggleHidden(ctx context.Context, id string) (*posts.Post, error)
	Remove(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}

// UserModeration is the user surface the dashboard drives.
type UserModeration interface {
	List(ctx context.Context) ([]users.User, error)
	Count(ctx context.Context) (int64, error)
	ToggleBlocked(ctx context.Context, id string) (*users.User, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	posts PostModeration
	users UserModeration
	log   *logger.Logger
}

func NewService(p PostModeration, u UserModeration, log *logger.Logger) *Service {
	return &Service{posts: p, users: u, log: log.With("component", "admin")}
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	counts := []struct {
		status posts.Status
		dst    *int64
	}{
		{posts.StatusLost, &st.Lost},
		{posts.StatusFound, &st.Found},
		{posts.StatusResolved, &st.Resolved},
	}
	for _, c := range counts {
		n, err := s.posts.CountByStatus(ctx, c.status)
		if err != nil {
			return nil, fmt.Errorf("count %s posts: %w", c.status, err)
		}
		*c.dst = n
	}

	n, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	st.Users = n
	return &st, nil
}

// Users lists every user with their posts, most recently active first.
// Users without posts come last.
func (s *Service) Users(ctx context.Context) ([]UserActivity, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	everything, err := s.posts.List(ctx, "")
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]posts.Post)
	for _, p := range everything {
		byUser[p.UserID] = append(byUser[p.UserID], p)
	}

	out := make([]UserActivity, 0, len(all))
	for _, u := range all {
		owned := byUser[u.ID.Hex()]
		if owned == nil {
			owned = []posts.Post{}
		}
		sortByWhen(owned)

		ua := UserActivity{User: u, Posts: owned, PostCount: len(owned)}
		if len(owned) > 0 && owned[0].Date != "" {
			latest := owned[0].Date
			ua.LatestActivity = &latest
		}
		out = append(out, ua)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LatestActivity, out[j].LatestActivity
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return *a > *b
	})
	return out, nil
}

// sortByWhen orders posts by date then time, newest first. Dates and times
// are zero padded so string order is chronological.
func sortByWhen(ps []posts.Post) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Date != ps[j].Date {
			return ps[i].Date > ps[j].Date
		}
		return ps[i].Time > ps[j].Time
	})
}

func (s *Service) ToggleBlocked(ctx context.Context, userID string) (*users.User, error) {
	return s.users.ToggleBlocked(ctx, userID)
}

func (s *Service) ToggleHidden(ctx context.Context, postID string) (*posts.Post, error) {
	return s.posts.ToggleHidden(ctx, postID)
}

// DeleteUser removes the user and then every post they own.
func (s *Service) DeleteUser(ctx context.Context, userID string) (*DeleteUserResult, error) {
	if err := s.users.Delete(ctx, userID); err != nil {
		return nil, err
	}

	removed, err := s.posts.DeleteByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("delete posts of user %s: %w", userID, err)
	}
	s.log.Info("user deleted", "id", userID, "postsRemoved", removed)
	return &DeleteUserResult{Deleted: true, PostsRemoved: removed}, nil
}

func (s *Service) DeletePost(ctx context.Context, postID string) error {
	return s.posts.Remove(ctx, postID)
}
