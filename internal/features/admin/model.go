package admin

import (
	"github.com/xyz-asif/lostfound/internal/features/posts"
	"github.com/xyz-asif/lostfound/internal/features/users"
)

// Stats is the dashboard summary.
type Stats struct {
	Lost     int64 `json:"lost"`
	Found    int64 `json:"found"`
	Resolved int64 `json:"resolved"`
	Users    int64 `json:"users"`
}

// UserActivity groups a user with the posts they authored.
// LatestActivity is the date of the newest post, nil when there are none.
type UserActivity struct {
	User           users.User   `json:"user"`
	Posts          []posts.Post `json:"posts"`
	PostCount      int          `json:"postCount"`
	LatestActivity *string      `json:"latestActivity"`
}

// DeleteUserResult reports the cascade.
type DeleteUserResult struct {
	Deleted      bool  `json:"deleted"`
	PostsRemoved int64 `json:"postsRemoved"`
}
