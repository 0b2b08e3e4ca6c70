package core

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is returned when an expected part of the article markup is absent.
	ErrParse = errors.New("unexpected article markup")
	// ErrNoImages is returned when there is nothing to assemble.
	ErrNoImages = errors.New("article has no images")
	// ErrCacheMiss is returned when an image referenced by the article is not cached.
	ErrCacheMiss = errors.New("image not in cache")
)

// StatusError reports a non-success HTTP response. It is fatal for the run.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// CacheMissError names the image that was expected in the cache.
type CacheMissError struct {
	URL  string
	Name string
}

func (e *CacheMissError) Error() string {
	return fmt.Sprintf("%s: %s (from %s)", ErrCacheMiss, e.Name, e.URL)
}

func (e *CacheMissError) Unwrap() error {
	return ErrCacheMiss
}
