// Package common holds the sentinel errors shared between repositories,
// services and the HTTP layer. Callers match them with errors.Is.
package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal  = errors.New("internal error")
	ErrorForbidden = errors.New("forbidden")

	// auth-specific errors
	//
	// ErrorInvalidCredentials covers both "no such user" and "wrong password"
	// so that the login endpoint cannot be used to enumerate accounts.
	ErrorInvalidCredentials = errors.New("invalid email or password")
	ErrorEmailTaken         = errors.New("email already in use")
	ErrorInvalidToken       = errors.New("invalid token")
	ErrorTokenExpired       = errors.New("token expired")

	// ErrorUserNotFound means a token carried a subject whose account no
	// longer exists.
	ErrorUserNotFound = errors.New("user not found")

	ErrorValidation = errors.New("validation error")
)
