package storage

// NoopAdapter is selected when no durable store is reachable.
type NoopAdapter struct{}

func (NoopAdapter) Load(string, any) bool { return false }
func (NoopAdapter) Save(string, any)      {}
