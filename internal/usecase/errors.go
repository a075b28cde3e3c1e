package usecase

import "errors"

var (
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidRefreshToken   = errors.New("invalid refresh token")
	ErrRefreshTokenExpired   = errors.New("refresh token expired")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrUserNotFound          = errors.New("user not found")
	ErrJobNotFound           = errors.New("job not found")
	ErrSkillNotFound         = errors.New("skill not found")
	ErrMatchNotFound         = errors.New("match not found")
	ErrUserSkillNotFound     = errors.New("user skill not found")
	ErrUserSkillProfileEmpty = errors.New("user skill profile empty")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInternal              = errors.New("internal error")
)
