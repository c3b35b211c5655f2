// Package auth implements the credential and session lifecycle engine:
// password hashing, login validation, and opaque session token issuance.
package auth
