package httpapi

import (
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/ramennsama/blog-api/internal/model"
)

type jwtResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName"`
	LastName    string    `json:"lastName"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Authorities []string  `json:"authorities"`
	CreatedAt   time.Time `json:"createdAt"`
	AvatarURL   string    `json:"avatarUrl"`
}

type postResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Slug          string    `json:"slug"`
	Published     bool      `json:"published"`
	AuthorID      uuid.UUID `json:"authorId"`
	AuthorEmail   string    `json:"authorEmail"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	LikesCount    int       `json:"likesCount"`
	DislikesCount int       `json:"dislikesCount"`
	ViewsCount    int       `json:"viewsCount"`
}

type commentResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	UserID    uuid.UUID `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	PostSlug  string    `json:"postSlug,omitempty"`
	PostTitle string    `json:"postTitle,omitempty"`
}

type tagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type pageResponse[T any] struct {
	Content    []T   `json:"content"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"totalItems"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Email:       u.Email,
		Authorities: u.Authorities,
		CreatedAt:   u.CreatedAt,
		AvatarURL:   u.AvatarURL,
	}
}

func toPostResponse(p *model.Post) postResponse {
	tags := make([]string, len(p.Tags))
	for i, t := range p.Tags {
		tags[i] = t.Name
	}
	resp := postResponse{
		ID:            p.ID,
		Title:         p.Title,
		Content:       p.Content,
		Slug:          p.Slug,
		Published:     p.Published,
		AuthorID:      p.AuthorID,
		Tags:          tags,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		LikesCount:    p.LikesCount,
		DislikesCount: p.DislikesCount,
		ViewsCount:    p.ViewsCount,
	}
	if p.Author != nil {
		resp.AuthorEmail = p.Author.Email
	}
	return resp
}

func toCommentResponse(c *model.Comment, withPost bool) commentResponse {
	resp := commentResponse{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.AuthorID,
		CreatedAt: c.CreatedAt,
	}
	if c.Author != nil {
		resp.Author = c.Author.FullName()
	}
	if withPost {
		resp.PostSlug = c.PostSlug
		resp.PostTitle = c.PostTitle
	}
	return resp
}

func toPostPage(page *model.Page[model.Post]) pageResponse[postResponse] {
	out := pageResponse[postResponse]{
		Content:    make([]postResponse, 0, len(page.Items)),
		Page:       page.Page,
		Size:       page.Size,
		TotalItems: page.TotalItems,
	}
	for i := range page.Items {
		out.Content = append(out.Content, toPostResponse(&page.Items[i]))
	}
	return out
}
