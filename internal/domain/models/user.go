package models

import (
	"context"
	"strings"
)

// ImageHandle is an opaque reference to a captured image. The core never
// inspects it, it only stores and returns it.
type ImageHandle string

// UserProfile is the identity attached to a session. Email is the unique
// key and is immutable after creation.
type UserProfile struct {
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	ProfilePic ImageHandle `json:"profile_pic,omitempty"`

	password string
}

func (u *UserProfile) GetPassword() string {
	return u.password
}

func (u *UserProfile) SetPassword(hash string) {
	u.password = hash
}

// AnonymousUser is the profile attached to requests without credentials.
func AnonymousUser() *UserProfile {
	return &UserProfile{}
}

func (u *UserProfile) IsAnonymous() bool {
	return u == nil || u.Email == ""
}

// SignupDraft carries the raw signup form before verification.
type SignupDraft struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Normalize trims whitespace and lowercases the email, which is used as
// a lookup key everywhere.
func (d *SignupDraft) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	d.Phone = strings.TrimSpace(d.Phone)
}

type userCtxKey struct{}

var userKey = userCtxKey{}

// WithUser injects the authenticated user into the context.
func WithUser(ctx context.Context, user *UserProfile) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the user previously injected by WithUser, or
// nil if the request is unauthenticated.
func UserFromContext(ctx context.Context) *UserProfile {
	if u, ok := ctx.Value(userKey).(*UserProfile); ok {
		return u
	}
	return nil
}
