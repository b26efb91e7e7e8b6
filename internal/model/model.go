// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Capability strings granted to users. Every registered user holds RoleUser;
// the first registered user additionally holds RoleAdmin.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User represents an account. Email doubles as the login username and the
// token subject.
type User struct {
	ID          uuid.UUID // PK
	FirstName   string
	LastName    string
	Email       string   // unique
	PwdHash     []byte   // bcrypt hash
	Authorities []string // granted capabilities, never empty for a live user
	Enabled     bool
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasRole reports whether the user holds the given capability.
func (u *User) HasRole(role string) bool {
	for _, a := range u.Authorities {
		if a == role {
			return true
		}
	}
	return false
}

// FullName is the display name used in comment and profile responses.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// Post is a blog entry. Counters mirror the membership sets at all times:
// LikesCount == len(LikedBy), DislikesCount == len(DislikedBy), and no user
// id appears in both sets.
type Post struct {
	ID            uuid.UUID // PK
	Title         string
	Content       string
	Slug          string // unique, derived from title
	Published     bool
	LikesCount    int
	DislikesCount int
	ViewsCount    int
	AuthorID      uuid.UUID
	Author        *User       // populated on reads
	Tags          []Tag       // many-to-many
	LikedBy       []uuid.UUID // user ids, populated on reads
	DislikedBy    []uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Comment belongs to one post and one author.
type Comment struct {
	ID        uuid.UUID
	Content   string
	PostID    uuid.UUID
	AuthorID  uuid.UUID
	Author    *User // populated on reads
	PostSlug  string
	PostTitle string
	CreatedAt time.Time
}

// Tag is a named label attached to posts.
type Tag struct {
	ID   uuid.UUID
	Name string // unique
}

// Page is a slice of results plus total count for offset pagination.
type Page[T any] struct {
	Items      []T
	TotalItems int64
	Page       int
	Size       int
}

// DashboardStats aggregates platform-wide counters for the admin dashboard.
type DashboardStats struct {
	TotalPosts     int64 `json:"totalPosts"`
	TotalUsers     int64 `json:"totalUsers"`
	TotalComments  int64 `json:"totalComments"`
	TotalTags      int64 `json:"totalTags"`
	PublishedPosts int64 `json:"publishedPosts"`
	DraftPosts     int64 `json:"draftPosts"`
	TotalViews     int64 `json:"totalViews"`
	TotalLikes     int64 `json:"totalLikes"`
	TotalDislikes  int64 `json:"totalDislikes"`
}
