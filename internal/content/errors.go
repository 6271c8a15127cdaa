package content

import "errors"

// ErrDuplicatePostID is returned when two posts of one language share an id.
var ErrDuplicatePostID = errors.New("duplicate post id")
