// Package middleware groups the HTTP middleware used by the server:
// rayid assigns a per-request correlation id, auth enforces the API key.
package middleware
