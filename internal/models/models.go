// ABOUTME: Core data models for posts, comments, users, and tags.
// ABOUTME: Mirrors the JSON shapes returned by the blogging REST backend.
package models

import (
	"time"
)

// Role is a user's permission level on the platform.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is a platform account as returned by /users and /auth endpoints.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Role      Role      `json:"role"`
	PostCount int       `json:"postCount,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the identity used for list diffing.
func (u User) Key() string { return u.ID }

// Author is the embedded author reference on posts and comments.
type Author struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// Post is a blog post. Content is HTML produced by the web editor.
type Post struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CoverImage string    `json:"coverImage,omitempty"`
	Tags       []string  `json:"tags"`
	Author     Author    `json:"author"`
	Likes      []string  `json:"likes"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Key returns the identity used for list diffing.
func (p Post) Key() string { return p.ID }

// LikedBy reports whether userID appears in the post's likes.
func (p Post) LikedBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range p.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment is a comment on a post.
type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"post,omitempty"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key returns the identity used for list diffing.
func (c Comment) Key() string { return c.ID }

// Tag is a tag name with the number of posts carrying it.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PostInput is the body for creating or updating a post.
type PostInput struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CoverImage string   `json:"coverImage"`
	Tags       []string `json:"tags"`
}

// ProfileInput is the body for updating the current user's profile.
type ProfileInput struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

// ContactInput is the body of the contact form.
type ContactInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Credentials is the body for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the body for signup.
type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
