// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command passgate is the terminal front end for passgate: it sets up a
// company passphrase, signs in, and keeps an interactive session until the
// user logs out or the session times out.
package main

import (
	"os"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	c := newCLI(os.Stdin)
	err := newRootCmd(c).Execute()
	// post-run hooks are skipped when a command fails
	_ = c.close()
	if err != nil {
		os.Exit(1)
	}
}
