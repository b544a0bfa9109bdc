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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping.
// Every one of them is fatal: the report either completes in full or the
// run aborts with one of these in the error chain. Callers wrap them with
// %w and the repository, user, or organization that triggered them.
var (
	// ErrBadCredentials indicates GitHub rejected the supplied credentials.
	// Maps to exit code 2.
	ErrBadCredentials = errors.New("bad github credentials")

	// ErrNotFound indicates a named repository, user, or organization does
	// not exist or is not visible to the authenticated caller.
	// Maps to exit code 2.
	ErrNotFound = errors.New("not found")

	// ErrRateLimit indicates the GitHub API rate limit has been exceeded.
	// Maps to exit code 2.
	ErrRateLimit = errors.New("github rate limit exceeded")

	// ErrNetworkFailure indicates a network connection problem.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")
)
