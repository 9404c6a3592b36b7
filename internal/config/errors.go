package config

import "errors"

// Configuration errors returned by Load and Validate.
var (
	ErrConfigNotFound   = errors.New("configuration file not found")
	ErrUnknownDriver    = errors.New("unknown storage driver")
	ErrMissingDSN       = errors.New("postgres storage requires a dsn")
	ErrNegativeDelay    = errors.New("simulation delays must be non-negative")
	ErrInvalidCapacity  = errors.New("history capacity must be positive")
	ErrCapacityTooLarge = errors.New("history capacity must not exceed 10")
	ErrUnknownFetcher   = errors.New("unknown fetcher mode")
	ErrInvalidTimeout   = errors.New("fetcher timeout must be positive")
	ErrUnknownBackend   = errors.New("unknown summarizer backend")
	ErrMissingAPIKey    = errors.New("chatgpt backend requires an api key")
)
