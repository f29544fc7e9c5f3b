package service

// StoreAvailability reports whether the backing store currently accepts operations.
type StoreAvailability interface {
	IsAvailable() bool
}
