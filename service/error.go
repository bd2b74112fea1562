package service

import "errors"

var (
	ErrEmptyQuery   = errors.New("empty query")
	ErrNoResults    = errors.New("nothing found")
	ErrSearchFailed = errors.New("search failed")
)
