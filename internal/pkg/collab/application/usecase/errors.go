package usecase

import "fmt"

// ErrPersistence indicates an infrastructure/repository failure inside a use
// case. Callers may retry; the failing detail is wrapped, never surfaced to
// end users.
var ErrPersistence = fmt.Errorf("collab use case persistence error")
