package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrValidation       = errors.New("validation error")
	ErrRecordNotFound   = errors.New("record doesn't exists")
	ErrTemplateNotFound = errors.New("workout template doesn't exists")
	ErrFoodNotInRecents = errors.New("food is not in recent foods")
	ErrOwnerNotFound    = errors.New("record owner doesn't exists")
)
