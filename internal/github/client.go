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

package github

import "context"

// Client defines the interface for interacting with GitHub's API.
// This interface allows for easy mocking in tests.
//
// All listing calls are page-based: each call fetches one page, and the
// returned page carries the cursor for the next one. Errors returned by
// implementations wrap the sentinels in internal/errors when the failure
// is an authentication, not-found, rate-limit, or network condition.
type Client interface {
	// GetRepository verifies that the referenced repository exists and is
	// visible to the authenticated caller, returning its canonical ref.
	GetRepository(ctx context.Context, ref RepoRef) (RepoRef, error)

	// ListUserRepositories retrieves a page of the repositories belonging
	// to the named user that are visible to the authenticated caller.
	ListUserRepositories(ctx context.Context, user string, opts ListOptions) (*RepositoryPage, error)

	// ListOrgRepositories retrieves a page of the repositories belonging
	// to the named organization that are visible to the authenticated caller.
	ListOrgRepositories(ctx context.Context, org string, opts ListOptions) (*RepositoryPage, error)

	// ListOpenPullRequests retrieves a page of the repository's open pull
	// requests. List responses do not carry a mergeable result; the
	// returned pull requests report MergeableUnknown until resolved via
	// GetPullRequest.
	ListOpenPullRequests(ctx context.Context, repo RepoRef, opts ListOptions) (*PullRequestPage, error)

	// GetPullRequest retrieves a single pull request, including the
	// host-computed mergeable state when it is available.
	GetPullRequest(ctx context.Context, repo RepoRef, number int) (*PullRequest, error)
}
