package service

import "errors"

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("password does not match")
	ErrInvalidVerifyToken = errors.New("invalid or expired verification token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnverified         = errors.New("email is not verified")

	ErrSlugTaken       = errors.New("slug already taken")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidParent   = errors.New("invalid parent comment")

	ErrImageNotFound  = errors.New("image not found")
	ErrImagesDisabled = errors.New("image uploads are disabled")
)
