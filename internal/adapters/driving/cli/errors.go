package cli

import "errors"

// errNotConfigured is returned by commands that need a configured OAuth application.
var errNotConfigured = errors.New("oauth application not configured, run 'hagraph auth configure'")
