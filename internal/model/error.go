package model

import "errors"

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Typed outcomes of the post store gateway. Callers branch on these with
// errors.Is instead of sniffing driver error codes.
var (
	ErrPostNotFound  = errors.New("post does not exist")
	ErrNotPostAuthor = errors.New("requester is not the author of the post")
	ErrLikeExists    = errors.New("post is already liked by this user")
	ErrUserNotFound  = errors.New("user does not exist")
)
