package models

import "errors"

// Custom errors
var (
	ErrEmptyRanking    = errors.New("game ranking is empty")
	ErrDuplicatePlayer = errors.New("duplicate player id in ranking")
	ErrUnknownPlayer   = errors.New("unknown player id in ranking")
	ErrGameNotFound    = errors.New("game not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicateGame   = errors.New("game id already exists")
)
