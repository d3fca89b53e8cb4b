package platform

import (
	"context"
	"time"

	"github.com/vietddude/interact/internal/core/domain"
)

// Post is the platform's handle for a created or reshared post.
type Post struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// User is the platform's handle for a user record.
type User struct {
	ID          string `json:"id"`
	ScreenName  string `json:"screen_name"`
	DisplayName string `json:"display_name"`
	Following   bool   `json:"following"`
}

// ProfileUpdate holds the mutable profile fields. Zero-value fields are left
// untouched.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Client performs interactions as one bound account. Every call is a single
// attempt; failures surface as *Error with a classified kind.
type Client interface {
	CreatePost(ctx context.Context, text string, mediaIDs []string) (*Post, error)
	ReplyToPost(ctx context.Context, postID, text string, mediaIDs []string) (*Post, error)
	QuotePost(ctx context.Context, postID, text string, mediaIDs []string) (*Post, error)
	Reshare(ctx context.Context, postID string) (*Post, error)
	Follow(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error)
}

// Factory builds one client per account. Construction binds credentials and
// proxy only; it performs no network I/O.
type Factory interface {
	Build(account *domain.Account) (Client, error)
}
