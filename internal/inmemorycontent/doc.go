// Package inmemorycontent provides a thread-safe, map-backed implementation
// of contentstore.Store for runs whose records fit comfortably in memory.
package inmemorycontent
