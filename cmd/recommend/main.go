// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

// Command recommend prints the products most similar to a query record.
//
//	recommend '{"productDisplayName":"Navy Blue Shirt","gender":"Men"}'
//	echo '{"productDisplayName":"Silver Watch"}' | recommend - --top-n 3 --output yaml
package main

import (
	"os"

	"github.com/tomtom215/stylematch/cmd/recommend/commands"
)

// Set by the release build.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	os.Exit(commands.Execute(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
