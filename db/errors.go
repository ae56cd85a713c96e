package db

import "errors"

var (
	ErrNotFound    = errors.New("person not found")
	ErrDuplicateID = errors.New("person id already exists")
)
