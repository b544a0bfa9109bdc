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

import (
	"context"
	"fmt"
	"sync"

	tugerrors "github.com/tugboathq/tugboat/internal/errors"
)

// Compile-time interface satisfaction check.
var _ Client = (*MockClient)(nil)

// MockClient is a mock implementation of the Client interface for testing.
// Fixture data is split into pages of the requested size, so pagination
// loops are exercised the same way as against the real API.
type MockClient struct {
	mu sync.Mutex

	// Fixture data.
	ReposByUser map[string][]RepoRef
	ReposByOrg  map[string][]RepoRef
	PullsByRepo map[RepoRef][]PullRequest

	// MergeableSequences drives GetPullRequest responses per PR: each call
	// pops the next state; once exhausted, the last state repeats. PRs
	// without a sequence resolve to the state recorded in PullsByRepo.
	MergeableSequences map[RepoRef]map[int][]MergeableState

	// Behavior flags.
	ShouldFailAuth      bool
	ShouldFailRateLimit bool
	Err                 error

	// Call tracking for verification.
	ListPullCalls []RepoRef
	GetPullCalls  map[string]int
	LastPageSize  int
}

// NewMockClient creates an empty mock client.
func NewMockClient() *MockClient {
	return &MockClient{
		ReposByUser:        make(map[string][]RepoRef),
		ReposByOrg:         make(map[string][]RepoRef),
		PullsByRepo:        make(map[RepoRef][]PullRequest),
		MergeableSequences: make(map[RepoRef]map[int][]MergeableState),
		GetPullCalls:       make(map[string]int),
	}
}

func (m *MockClient) fail(subject string) error {
	if m.ShouldFailAuth {
		return fmt.Errorf("%s: %w", subject, tugerrors.ErrBadCredentials)
	}
	if m.ShouldFailRateLimit {
		return fmt.Errorf("%s: %w", subject, tugerrors.ErrRateLimit)
	}
	return m.Err
}

// GetRepository implements the Client interface. Repositories are "known"
// when they carry pull request fixture data or belong to a fixture account.
func (m *MockClient) GetRepository(ctx context.Context, ref RepoRef) (RepoRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("looking up repository " + ref.FullName()); err != nil {
		return RepoRef{}, err
	}
	if _, ok := m.PullsByRepo[ref]; ok {
		return ref, nil
	}
	for _, repos := range m.ReposByUser {
		for _, r := range repos {
			if r == ref {
				return ref, nil
			}
		}
	}
	for _, repos := range m.ReposByOrg {
		for _, r := range repos {
			if r == ref {
				return ref, nil
			}
		}
	}
	return RepoRef{}, fmt.Errorf("looking up repository %s: %w", ref, tugerrors.ErrNotFound)
}

// ListUserRepositories implements the Client interface.
func (m *MockClient) ListUserRepositories(ctx context.Context, user string, opts ListOptions) (*RepositoryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("listing repositories for user " + user); err != nil {
		return nil, err
	}
	repos, ok := m.ReposByUser[user]
	if !ok {
		return nil, fmt.Errorf("listing repositories for user %q: %w", user, tugerrors.ErrNotFound)
	}
	items, next := paginate(repos, opts)
	return &RepositoryPage{Repos: items, NextPage: next}, nil
}

// ListOrgRepositories implements the Client interface.
func (m *MockClient) ListOrgRepositories(ctx context.Context, org string, opts ListOptions) (*RepositoryPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fail("listing repositories for organization " + org); err != nil {
		return nil, err
	}
	repos, ok := m.ReposByOrg[org]
	if !ok {
		return nil, fmt.Errorf("listing repositories for organization %q: %w", org, tugerrors.ErrNotFound)
	}
	items, next := paginate(repos, opts)
	return &RepositoryPage{Repos: items, NextPage: next}, nil
}

// ListOpenPullRequests implements the Client interface. As with the real
// REST API, listed pull requests report MergeableUnknown unless the fixture
// explicitly set a state.
func (m *MockClient) ListOpenPullRequests(ctx context.Context, repo RepoRef, opts ListOptions) (*PullRequestPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ListPullCalls = append(m.ListPullCalls, repo)
	m.LastPageSize = opts.PerPage

	if err := m.fail("listing open pull requests for " + repo.FullName()); err != nil {
		return nil, err
	}
	pulls, ok := m.PullsByRepo[repo]
	if !ok {
		return nil, fmt.Errorf("listing open pull requests for %s: %w", repo, tugerrors.ErrNotFound)
	}
	items, next := paginate(pulls, opts)
	page := &PullRequestPage{
		PullRequests: make([]PullRequest, len(items)),
		NextPage:     next,
	}
	for i, pr := range items {
		if pr.Mergeable == "" {
			pr.Mergeable = MergeableUnknown
		}
		page.PullRequests[i] = pr
	}
	return page, nil
}

// GetPullRequest implements the Client interface.
func (m *MockClient) GetPullRequest(ctx context.Context, repo RepoRef, number int) (*PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := fmt.Sprintf("%s#%d", repo, number)
	m.GetPullCalls[key]++

	if err := m.fail("fetching pull request " + key); err != nil {
		return nil, err
	}
	for _, pr := range m.PullsByRepo[repo] {
		if pr.Number != number {
			continue
		}
		if seq := m.MergeableSequences[repo][number]; len(seq) > 0 {
			idx := m.GetPullCalls[key] - 1
			if idx >= len(seq) {
				idx = len(seq) - 1
			}
			pr.Mergeable = seq[idx]
		}
		if pr.Mergeable == "" {
			pr.Mergeable = MergeableUnknown
		}
		return &pr, nil
	}
	return nil, fmt.Errorf("fetching pull request %s: %w", key, tugerrors.ErrNotFound)
}

// paginate slices fixture data into one page, mirroring REST pagination:
// pages are 1-based and the returned cursor is 0 on the last page.
func paginate[T any](items []T, opts ListOptions) ([]T, int) {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPageSize
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	start := (page - 1) * perPage
	if start >= len(items) {
		return nil, 0
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	next := 0
	if end < len(items) {
		next = page + 1
	}
	return items[start:end:end], next
}
