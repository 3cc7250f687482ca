package storage

// Adapter is the persistence contract the state store depends on.
// Load reports false when the key is absent, the store is unreachable or the
// stored text cannot be decoded into v. Save never fails loudly; problems are
// logged and the in-memory state stays authoritative.
type Adapter interface {
	Load(key string, v any) bool
	Save(key string, v any)
}

// Backend is a durable text key-value store.
type Backend interface {
	// Lifecycle
	Open() error
	Close() error

	// Values
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Keys() ([]string, error)

	// Utils
	Location() string
}
