// Package httpapi exposes the account, task and weather endpoints over HTTP.
//
// Every request passes through the auth gate, which attaches a caller
// identity when a valid bearer token is present and otherwise leaves the
// request anonymous. Routes marked private answer 401 for anonymous callers
// before their handler runs.
package httpapi
