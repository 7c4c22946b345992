package cli

import "errors"

var (
	errConfigFileNotFound = errors.New("config file not found")
	errConfigFileRead     = errors.New("cannot read config file")
	errConfigInvalid      = errors.New("invalid config file")
	errAuthorFileEmpty    = errors.New("author_file cannot be empty")
	errOutputFileEmpty    = errors.New("output_file cannot be empty")
	errRandomCountNeeded  = errors.New("--random requires a positive count")
)
