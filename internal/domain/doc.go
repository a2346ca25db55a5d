// Package domain defines the core entities of the drill engine and their
// validation rules.
package domain
