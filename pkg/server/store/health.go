package store

// HealthStore abstracts the storage reachability check used by the status
// endpoints.
type HealthStore interface {
	Ping() error
}
