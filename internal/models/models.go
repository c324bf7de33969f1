package models

import (
	"time"

	"github.com/lib/pq"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID                   string     `json:"id" db:"id"`
	Fullname             string     `json:"fullname" db:"fullname"`
	Email                string     `json:"email" db:"email"`
	Username             string     `json:"username" db:"username"`
	PasswordHash         string     `json:"-" db:"password_hash"`
	Role                 string     `json:"role" db:"role"`
	IsVerified           bool       `json:"isVerified" db:"is_verified"`
	EmailVerifyToken     *string    `json:"-" db:"email_verify_token"`
	LastLogin            time.Time  `json:"lastLogin" db:"last_login"`
	PasswordResetToken   *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires *time.Time `json:"-" db:"password_reset_expires"`
	CreatedAt            time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt            time.Time  `json:"updatedAt" db:"updated_at"`
}

// Author is the public face of a user attached to posts and comments.
type Author struct {
	ID       string `json:"id" db:"id"`
	Fullname string `json:"fullname" db:"fullname"`
	Username string `json:"username" db:"username"`
}

type Post struct {
	ID          string         `json:"id" db:"id"`
	Title       string         `json:"title" db:"title"`
	Slug        string         `json:"slug" db:"slug"`
	AuthorID    string         `json:"authorId" db:"author_id"`
	Tags        pq.StringArray `json:"tags" db:"tags"`
	Content     string         `json:"content" db:"content"`
	HTMLContent string         `json:"htmlContent" db:"html_content"`
	Published   bool           `json:"published" db:"published"`
	CreatedAt   time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time      `json:"updatedAt" db:"updated_at"`
}

// PostWithAuthor is a post row joined with its author's public columns.
type PostWithAuthor struct {
	Post
	AuthorUsername string `db:"author_username"`
	AuthorFullname string `db:"author_fullname"`
}

func (p PostWithAuthor) Author() Author {
	return Author{ID: p.AuthorID, Fullname: p.AuthorFullname, Username: p.AuthorUsername}
}

type Comment struct {
	ID        string    `json:"id" db:"id"`
	Content   string    `json:"content" db:"content"`
	AuthorID  string    `json:"authorId" db:"author_id"`
	PostID    string    `json:"postId" db:"post_id"`
	ParentID  *string   `json:"parentId" db:"parent_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type CommentWithAuthor struct {
	Comment
	AuthorUsername string `db:"author_username"`
	AuthorFullname string `db:"author_fullname"`
}

func (c CommentWithAuthor) Author() Author {
	return Author{ID: c.AuthorID, Fullname: c.AuthorFullname, Username: c.AuthorUsername}
}

// CommentThread is a top-level comment with its direct replies.
type CommentThread struct {
	CommentWithAuthor
	Replies []CommentWithAuthor
}

type Image struct {
	ID         string    `json:"id" db:"id"`
	PostID     string    `json:"postId" db:"post_id"`
	ObjectName string    `json:"-" db:"object_name"`
	ImageURL   string    `json:"imageUrl" db:"image_url"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
