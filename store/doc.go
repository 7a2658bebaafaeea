// Package store provides volatile in-memory implementations of the core store
// interfaces. All stores keep entities in process-local maps guarded by
// RWMutexes and are safe for concurrent access from multiple orchestration
// runs. They are best suited for tests, demos and ephemeral servers; durable
// deployments supply their own implementations of the core interfaces.
package store
