// Copyright 2026 The Tugboat Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	tugerrors "github.com/tugboathq/tugboat/internal/errors"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tugboat",
		Short: "Report on open GitHub pull requests",
		Long: `Tugboat generates a report of the open pull requests across a set of
repositories, users, and organizations: one line per pull request with its
URL, whether it can be merged cleanly, and its title, sorted so the most
recently updated pull requests come first.`,
		Version:       version,
		SilenceUsage:  true, // Don't show usage on error
		SilenceErrors: true, // We'll handle error printing ourselves
	}

	rootCmd.AddCommand(newReportCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// mapErrorToExitCode maps internal errors to appropriate exit codes.
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	if errors.Is(err, tugerrors.ErrBadCredentials) ||
		errors.Is(err, tugerrors.ErrNotFound) ||
		errors.Is(err, tugerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, tugerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
