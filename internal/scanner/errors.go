package scanner

import "errors"

// ErrMemoryLimit aborts a scan run that grew past its configured memory
// ceiling. Unlike a single failed category, the whole run stops.
var ErrMemoryLimit = errors.New("scan aborted: memory limit exceeded")
