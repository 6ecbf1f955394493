package identity

import "errors"

var (
	ErrTokenGenerateFail = errors.New("failed to generate token")
	ErrInvalidToken      = errors.New("invalid token")
	ErrExpToken          = errors.New("expired token")
	ErrUnexpected        = errors.New("unexpected error")
)
