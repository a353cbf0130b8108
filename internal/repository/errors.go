package repository

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateSlug  = errors.New("slug already exists")
	ErrDuplicateEntry = errors.New("entry already exists")
)
