package model

import "errors"

var (
	// ErrSessionNotFound is returned when a session does not exist or is not owned by the caller.
	ErrSessionNotFound = errors.New("practice session not found")
	// ErrQuestionNotFound indicates a question id outside the session's bound set.
	ErrQuestionNotFound = errors.New("question not found in session")
	// ErrSubjectNotFound indicates an unknown subject id or code.
	ErrSubjectNotFound = errors.New("subject not found")
	// ErrEmptyQuestionSet is returned when a session is started without any questions.
	ErrEmptyQuestionSet = errors.New("session requires at least one question")
	// ErrDuplicateAttempt indicates an answer already recorded for this (session, question).
	ErrDuplicateAttempt = errors.New("answer already recorded for this question")
	// ErrInvalidCredentials covers bad email/password pairs on login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates a signup with an already registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrAuthTimeout indicates the auth backend did not answer within the configured deadline.
	ErrAuthTimeout = errors.New("authentication timed out, check backend configuration and retry")
	// ErrUserNotFound indicates a missing user row for an authenticated id.
	ErrUserNotFound = errors.New("user not found")
)
