package client

import "errors"

var (
	ErrAlreadyInitialized = errors.New("passphrase already set up for this company")
	ErrNotInitialized     = errors.New("no passphrase set up for this company")
	ErrNotSignedIn        = errors.New("not signed in")
)
