// Package store defines the persistence interfaces of the drill engine and
// shared transaction plumbing. Implementations live in platform packages.
package store
