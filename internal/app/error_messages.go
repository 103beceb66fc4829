// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// passgate services and the CLI.
//
// All Msg* constants are human-readable strings shown to the person at the
// keyboard. They are deliberately generic: none of them tells an attacker
// whether a company exists, which check failed, or what the storage layer
// reported. Keeping them in one place ensures consistent wording.
package app

const (
	// MsgInvalidPassphrase is shown for every rejected passphrase, whether
	// the company has no test data, the key did not decrypt, or the
	// plaintext did not match.
	MsgInvalidPassphrase = "That passphrase doesn't seem to match. Please try again."

	// MsgRateLimited is shown while an identifier is locked. The %s verb
	// receives the remaining wait rounded up to a minute or second.
	MsgRateLimited = "Too many attempts. Please wait %s before trying again."

	// MsgAccountLocked is shown on the failed attempt that triggers a lock.
	MsgAccountLocked = "Too many failed attempts. Sign-in is paused for %s."

	// MsgUnknownError is shown for failures the user cannot act on.
	MsgUnknownError = "Something went wrong while signing in. Please try again."

	// MsgWeakPassphrase is shown when a new passphrase fails the strength
	// rule.
	MsgWeakPassphrase = "Choose a passphrase of at least 12 characters that is not a single repeated character."

	// MsgStorageFull is shown when secure storage ran out of space even
	// after old entries were cleaned up.
	MsgStorageFull = "Local storage is full. Free some space and try again."

	// MsgStorageUnavailable is shown when secure storage is not ready or
	// the backend failed.
	MsgStorageUnavailable = "Secure storage is not available right now."

	// MsgSessionEnded is shown when a session token is expired, revoked or
	// otherwise rejected.
	MsgSessionEnded = "Your session has ended. Please sign in again."

	// MsgNotSignedIn is shown for actions that need an active session.
	MsgNotSignedIn = "You are not signed in."
)
