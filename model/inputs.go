package model

import "github.com/go-playground/validator/v10"

// Shared validator instance for all request inputs.
var validate = validator.New()

// SignupInput is the request body of POST /auth/signup. The password travels
// under the wire name "hash" for compatibility with existing clients.
type SignupInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,min=1,max=64"`
	LastName  string `json:"lastName" validate:"required,min=1,max=64"`
	Password  string `json:"hash" validate:"required,min=8,max=128"`
}

func (in *SignupInput) Validate() error {
	return validate.Struct(in)
}

// LoginInput is the request body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"hash" validate:"required"`
}

func (in *LoginInput) Validate() error {
	return validate.Struct(in)
}

// CreatePostInput is the request body for creating a post.
type CreatePostInput struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1,max=10000"`
}

func (in *CreatePostInput) Validate() error {
	return validate.Struct(in)
}

// UpdatePostInput is the request body for a partial post update. At least one
// of the fields must be present, which UpdatePost checks on top of the tags.
type UpdatePostInput struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content *string `json:"content" validate:"omitempty,min=1,max=10000"`
}

func (in *UpdatePostInput) Validate() error {
	return validate.Struct(in)
}

// Empty reports whether the update carries no field at all.
func (in *UpdatePostInput) Empty() bool {
	return in.Title == nil && in.Content == nil
}

// CommentInput is the request body for creating or editing a comment.
type CommentInput struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

func (in *CommentInput) Validate() error {
	return validate.Struct(in)
}

// ReplyInput is the request body for replying to a comment.
type ReplyInput struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

func (in *ReplyInput) Validate() error {
	return validate.Struct(in)
}
