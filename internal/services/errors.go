package services

import "errors"

var (
	// ErrRepoNotFound means a requested repository has not been mined
	ErrRepoNotFound = errors.New("repo not found")
	// ErrInvalidRepoCount means a comparison asked for fewer than one or more than three repos
	ErrInvalidRepoCount = errors.New("between one and three repositories can be compared")
	// ErrMissingMetadata means the metadata API response lacked a required field
	ErrMissingMetadata = errors.New("repository metadata is incomplete")

	ErrUsernameTaken      = errors.New("a user with that username already exists")
	ErrInvalidActivation  = errors.New("activation link is invalid")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is not activated")
)
