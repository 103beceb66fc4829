// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client assembles passgate from configuration.
//
// [App] owns the durable and volatile stores, the secure storage engine,
// the passphrase verifier, the session manager, device trust, the logout
// coordinator and the background maintenance job, and exposes the surface
// the command-line front end drives.
package client
