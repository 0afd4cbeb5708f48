package service

import "errors"

var (
	// ErrQuizNotFound is returned for missing quizzes and for quizzes of other owners.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrDictionaryNotFound is returned for missing dictionaries and for dictionaries
	// the caller neither owns nor borrowed.
	ErrDictionaryNotFound   = errors.New("dictionary not found")
	ErrQuizAlreadyCompleted = errors.New("quiz already completed")
	ErrQuizNotCompleted     = errors.New("quiz not yet completed")
	ErrInvalidInput         = errors.New("invalid input")
)
