package repository

import "errors"

var ErrNotFound = errors.New("not found in storage")
var ErrUserExists = errors.New("user already registered")
