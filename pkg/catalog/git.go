// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/storage/memory"
	"golang.org/x/mod/semver"
)

// GitSource names a module whose versions are the release tags of a git remote.
type GitSource struct {
	Name ModuleName
	URL  string
	// Auth is optional; nil uses anonymous access.
	Auth transport.AuthMethod
}

// FromGitTags builds a catalog by listing the tags of each source's remote.
// Tags that look like versions ("1.2", "v1.2.3") become the module's
// versions, ordered oldest first with the "v" prefix stripped.
func FromGitTags(ctx context.Context, sources ...GitSource) (*Catalog, error) {
	entries := make([]Entry, 0, len(sources))
	for _, src := range sources {
		tags, err := listTags(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("module %s: %w", src.Name, err)
		}
		entries = append(entries, Entry{Name: src.Name, Versions: VersionsFromTags(tags)})
	}
	return New(entries...)
}

func listTags(ctx context.Context, src GitSource) ([]string, error) {
	// In-memory storage lists remote refs without cloning.
	remote := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{src.URL},
	})
	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: src.Auth})
	if err != nil {
		return nil, fmt.Errorf("failed to list remote refs: %w", err)
	}

	var tags []string
	for _, ref := range refs {
		if ref.Name().IsTag() {
			tags = append(tags, ref.Name().Short())
		}
	}
	return tags, nil
}

// VersionsFromTags keeps the tags that parse as versions and orders them by
// semantic version, oldest first. Tags naming the same version ("1.2",
// "v1.2.0") keep the first spelling seen.
func VersionsFromTags(tags []string) []Version {
	canon := make(map[string]string, len(tags)) // canonical semver -> version
	for _, tag := range tags {
		bare := strings.TrimPrefix(tag, "v")
		v := "v" + bare
		if !semver.IsValid(v) || semver.Prerelease(v) != "" || semver.Build(v) != "" {
			continue
		}
		key := semver.Canonical(v)
		if _, dup := canon[key]; dup {
			continue
		}
		canon[key] = bare
	}

	keys := make([]string, 0, len(canon))
	for k := range canon {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, semver.Compare)

	out := make([]Version, len(keys))
	for i, k := range keys {
		out[i] = Version(canon[k])
	}
	return out
}
