package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Blog is a user-submitted post in the shared blog collection.
type Blog struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateBlogRequest is the body accepted when posting a blog.
type CreateBlogRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// Complete reports whether every field carries a non-blank value.
func (r CreateBlogRequest) Complete() bool {
	return strings.TrimSpace(r.Title) != "" &&
		strings.TrimSpace(r.Description) != "" &&
		strings.TrimSpace(r.Image) != ""
}

// NewBlog assigns an id and creation time to a request.
func NewBlog(req CreateBlogRequest, now time.Time) *Blog {
	return &Blog{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		CreatedAt:   now.UTC(),
	}
}
