package matching

import "errors"

// ErrMatchingAborted wraps the reason a matching pass rolled back instead
// of committing.
var ErrMatchingAborted = errors.New("matching pass aborted")
