package errors

// ConfigError creates a configuration error shown verbatim to the user.
func ConfigError(message string) *PackError {
	return New(CategoryConfig, SeverityError, message)
}

// WrapConfig wraps a lower-level error as a configuration error.
func WrapConfig(err error, message string) *PackError {
	return Wrap(err, CategoryConfig, SeverityError, message)
}

// ValidationError creates a new validation error (invalid usage).
func ValidationError(message string) *PackError {
	return New(CategoryValidation, SeverityWarning, message)
}

// WrapGit wraps a git sync failure; these are typically transient.
func WrapGit(err error, message string) *PackError {
	return WrapRetryable(err, CategoryGit, SeverityError, message)
}

// WrapBuild wraps a pack generation failure.
func WrapBuild(err error, message string) *PackError {
	return Wrap(err, CategoryBuild, SeverityError, message)
}

// WrapDaemon wraps a daemon lifecycle failure.
func WrapDaemon(err error, message string) *PackError {
	return Wrap(err, CategoryDaemon, SeverityError, message)
}
