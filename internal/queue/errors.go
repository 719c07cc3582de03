package queue

import "errors"

// ErrEmpty is returned when a pop finds no queue file or no entries.
var ErrEmpty = errors.New("queue is empty")

// ErrFormat is returned when a queue line does not split into exactly three
// pipe-separated fields.
var ErrFormat = errors.New("malformed queue line")
