package aggregate

import "errors"

// ErrGraphFrozen is returned when a frozen graph is modified.
var ErrGraphFrozen = errors.New("aggregation graph is frozen and cannot be modified")
