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

// Package github provides types and a client interface for the GitHub REST API.
package github

import (
	"fmt"
	"strings"
	"time"
)

// RepoRef identifies a repository by owner and name. It is a comparable
// value type; two refs denote the same repository exactly when both fields
// are equal, which makes RepoRef usable as a set key.
type RepoRef struct {
	Owner string
	Name  string
}

// ParseRepoRef parses an "owner/name" string into a RepoRef.
func ParseRepoRef(fullName string) (RepoRef, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return RepoRef{}, fmt.Errorf("invalid repository name %q: expected owner/name", fullName)
	}
	return RepoRef{Owner: strings.TrimSpace(parts[0]), Name: strings.TrimSpace(parts[1])}, nil
}

// FullName returns the "owner/name" form of the ref.
func (r RepoRef) FullName() string {
	return r.Owner + "/" + r.Name
}

func (r RepoRef) String() string {
	return r.FullName()
}

// MergeableState is the host-computed mergeability of a pull request.
// GitHub computes the flag asynchronously, so it can be temporarily unknown.
type MergeableState string

const (
	// MergeableUnknown means the host has not (yet) reported a result.
	MergeableUnknown MergeableState = "unknown"
	// MergeableClean means the pull request can be merged without conflicts.
	MergeableClean MergeableState = "mergeable"
	// MergeableConflicted means the pull request has merge conflicts.
	MergeableConflicted MergeableState = "conflicted"
)

// PullRequest holds the metadata of one open pull request as rendered in
// the report. Instances are read-only after the fetch completes.
type PullRequest struct {
	Repo      RepoRef
	Number    int
	Title     string
	Author    string
	URL       string
	HeadLabel string // "owner:branch" of the proposed head
	BaseLabel string // "owner:branch" of the merge target
	CreatedAt time.Time
	UpdatedAt time.Time
	Mergeable MergeableState
}

// RepositoryPage is one page of a repository listing. NextPage is the page
// number to request next, or 0 when this is the last page.
type RepositoryPage struct {
	Repos    []RepoRef
	NextPage int
}

// PullRequestPage is one page of an open pull request listing. NextPage is
// the page number to request next, or 0 when this is the last page.
type PullRequestPage struct {
	PullRequests []PullRequest
	NextPage     int
}

// ListOptions configures paginated list calls.
type ListOptions struct {
	// Page selects the page to fetch. Zero fetches the first page.
	Page int

	// PerPage controls the page size. Defaults to 50 if not specified;
	// GitHub caps it at 100.
	PerPage int
}

const defaultPageSize = 50
