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

// Package resolve expands repository, user, and organization inputs into a
// deduplicated set of concrete repository references.
package resolve

import (
	"context"

	"github.com/tugboathq/tugboat/internal/github"
)

// StatusFunc receives a notice before each account or repository lookup.
// kind is "repository", "user", or "organization".
type StatusFunc func(kind, name string)

// Options configures a Resolver.
type Options struct {
	// PageSize is the per-page item count for repository listings.
	PageSize int

	// Status, if non-nil, is invoked before each lookup.
	Status StatusFunc
}

// Resolver turns named repositories, users, and organizations into a set of
// RepoRef. The zero set is a valid result: no inputs means no repositories,
// not an error.
type Resolver struct {
	client github.Client
	opts   Options
}

// New creates a Resolver backed by the given client.
func New(client github.Client, opts Options) *Resolver {
	return &Resolver{client: client, opts: opts}
}

// Resolve produces the deduplicated union of:
//   - the explicitly named repositories, each validated against the host;
//   - every repository visible under each named user;
//   - every repository visible under each named organization.
//
// The result preserves first-seen order. Any lookup failure aborts
// resolution; there is no partial result.
func (r *Resolver) Resolve(ctx context.Context, repos, users, orgs []string) ([]github.RepoRef, error) {
	seen := make(map[github.RepoRef]struct{})
	var resolved []github.RepoRef

	add := func(ref github.RepoRef) {
		if _, ok := seen[ref]; ok {
			return
		}
		seen[ref] = struct{}{}
		resolved = append(resolved, ref)
	}

	for _, name := range repos {
		ref, err := github.ParseRepoRef(name)
		if err != nil {
			return nil, err
		}
		r.status("repository", name)
		canonical, err := r.client.GetRepository(ctx, ref)
		if err != nil {
			return nil, err
		}
		add(canonical)
	}

	for _, user := range users {
		r.status("user", user)
		if err := r.expand(ctx, func(opts github.ListOptions) (*github.RepositoryPage, error) {
			return r.client.ListUserRepositories(ctx, user, opts)
		}, add); err != nil {
			return nil, err
		}
	}

	for _, org := range orgs {
		r.status("organization", org)
		if err := r.expand(ctx, func(opts github.ListOptions) (*github.RepositoryPage, error) {
			return r.client.ListOrgRepositories(ctx, org, opts)
		}, add); err != nil {
			return nil, err
		}
	}

	return resolved, nil
}

// expand consumes every page of a repository listing.
func (r *Resolver) expand(ctx context.Context, list func(github.ListOptions) (*github.RepositoryPage, error), add func(github.RepoRef)) error {
	opts := github.ListOptions{PerPage: r.opts.PageSize}
	for {
		page, err := list(opts)
		if err != nil {
			return err
		}
		for _, ref := range page.Repos {
			add(ref)
		}
		if page.NextPage == 0 {
			return nil
		}
		opts.Page = page.NextPage
	}
}

func (r *Resolver) status(kind, name string) {
	if r.opts.Status != nil {
		r.opts.Status(kind, name)
	}
}
