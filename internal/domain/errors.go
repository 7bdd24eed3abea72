package domain

import "errors"

// Domain errors.
var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmptyText         = errors.New("task text cannot be empty")
	ErrInvalidPriority   = errors.New("invalid priority (want low, medium or high)")
	ErrInvalidFilter     = errors.New("invalid filter (want all, pending, completed or high)")
	ErrInvalidDate       = errors.New("invalid date (want YYYY-MM-DD)")
	ErrInvalidBackend    = errors.New("invalid store backend (want cookie, sqlite or git)")
	ErrRequestResolved   = errors.New("request already resolved")
	ErrConfigExists      = errors.New("config file already exists")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)
