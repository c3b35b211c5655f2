// Package server is the HTTP routing shim. It parses requests, carries the
// session token in a signed cookie, and formats auth results as JSON. All
// domain decisions happen behind the AuthService interface.
package server
