// Package api provides HTTP handlers for the drill API.
package api
