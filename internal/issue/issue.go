// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/catalog"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/fetch"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/loader"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/namespace"
	"github.com/yenbao1340/gmaps-utility-library-dev-sub001/pkg/resolver"
)

type Id int

const (
	CatalogLoadFailedId Id = iota + 1
	UnknownModuleId
	NoMatchingVersionId
	FetchFailedId
	LoadTimeoutId
	BurstOrderingId
	NamespaceConflictId
	ConfigLoadFailedId
	ArtifactInvalidId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render returns the issue as terminal markdown. An empty stylePath picks
// the glamour style matching the terminal background.
func (i *Issue) Render(stylePath string) (string, error) {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range slices.Concat(i.docLinks, i.extLinks) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	if stylePath == "" {
		stylePath = "auto"
	}
	return render(sb.String(), stylePath)
}

var (
	render = glamour.Render

	catalogLoadFailedIssue = &Issue{
		id: CatalogLoadFailedId,
		mdMsg: `
# Failed to load the module catalog!

The catalog lists every module and its published versions. Loading stops
until it can be read.

## Supported formats (picked by extension):
- **.cue** (the default)
- **.yaml**/**.yml** and **.toml**
- **.hcl**

## Things you can try:
- Point modload at a catalog explicitly:
~~~
$ modload --catalog ./catalog.cue catalog list
~~~

- Check that every module name is a dotted identifier and that no version
  is listed twice:
~~~cue
modules: {
  widget: ["1.0", "1.1"]
  "lib.core": ["2.0"]
}
~~~`,
	}

	unknownModuleIssue = &Issue{
		id: UnknownModuleId,
		mdMsg: `
# Unknown module!

The module you asked for is not in the catalog. Nothing was fetched.

## Things you can try:
- List the modules the catalog knows about:
~~~
$ modload catalog list
~~~

- Check the spelling; module names are case sensitive
- Add the module to your catalog if it was published recently`,
	}

	noMatchingVersionIssue = &Issue{
		id: NoMatchingVersionId,
		mdMsg: `
# No matching version!

No published version of the module starts with the version you requested.
Versions match by prefix, and the last match in release order wins: "1"
selects the newest "1.x" release.

## Things you can try:
- Show the published versions:
~~~
$ modload catalog show <module>
~~~

- Request the development build instead:
~~~
$ modload load <module>@dev
~~~`,
	}

	fetchFailedIssue = &Issue{
		id: FetchFailedId,
		mdMsg: `
# Module failed to load!

The artifact could not be retrieved or did not report itself as loaded.
The rest of the burst still completed.

## Things you can try:
- Print the URL the module resolves to:
~~~
$ modload resolve <module>@<version>
~~~

- Check that the release or development location in your config is reachable
- Run with verbose mode for the full error chain:
~~~
$ modload --verbose load <module>@<version>
~~~`,
	}

	loadTimeoutIssue = &Issue{
		id: LoadTimeoutId,
		mdMsg: `
# Module load timed out!

The module never reported back, so it was marked as failed to let the burst
finish.

## Things you can try:
- Raise the timeout for slow networks:
~~~
$ modload load --timeout 2m <module>@<version>
~~~

- Or set it in your config file:
~~~cue
loader: timeout: "2m"
~~~`,
	}

	burstOrderingIssue = &Issue{
		id: BurstOrderingId,
		mdMsg: `
# Loads issued out of order!

A burst starts by setting the final callback. Loads issued before that, or
a new final callback set while loads are still in flight, are rejected.

## Things you can try:
- Set the final callback first, then issue every load of the burst
- Wait for the final callback before starting the next burst`,
	}

	namespaceConflictIssue = &Issue{
		id: NamespaceConflictId,
		mdMsg: `
# Namespace conflict!

A module tried to export a name below a path that already holds a plain
value. Exports only add to the namespace; they never replace a value with
a container below it.

## Things you can try:
- Check which modules export the conflicting path
- Rename the export in one of the modules`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show the configuration modload would use:
~~~
$ modload config show
~~~

- Write a fresh default configuration file:
~~~
$ modload config init
~~~

- Environment variables override the file, e.g. ` + "`MODLOAD_LOG_LEVEL=debug`",
	}

	artifactInvalidIssue = &Issue{
		id: ArtifactInvalidId,
		mdMsg: `
# Invalid module artifact!

The artifact was downloaded but does not declare a module.

## A valid CUE artifact:
~~~cue
module: "widget"
exports: {
  foo: 42
}
~~~

## A valid shell artifact:
~~~sh
provide foo 42
loaded widget
~~~`,
	}

	issues = map[Id]*Issue{
		catalogLoadFailedIssue.Id(): catalogLoadFailedIssue,
		unknownModuleIssue.Id():     unknownModuleIssue,
		noMatchingVersionIssue.Id(): noMatchingVersionIssue,
		fetchFailedIssue.Id():       fetchFailedIssue,
		loadTimeoutIssue.Id():       loadTimeoutIssue,
		burstOrderingIssue.Id():     burstOrderingIssue,
		namespaceConflictIssue.Id(): namespaceConflictIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		artifactInvalidIssue.Id():   artifactInvalidIssue,
	}
)

// Values returns every issue ordered by id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}

// FromError returns the catalog entry explaining err, or nil. An issue id
// attached through ErrorContext.WithIssue takes precedence.
func FromError(err error) *Issue {
	if err == nil {
		return nil
	}
	var ae *ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return Get(ae.Issue)
	}

	switch {
	case errors.Is(err, resolver.ErrUnknownModule):
		return Get(UnknownModuleId)
	case errors.Is(err, resolver.ErrNoMatchingVersion):
		return Get(NoMatchingVersionId)
	case errors.Is(err, loader.ErrLoadTimeout):
		return Get(LoadTimeoutId)
	case errors.Is(err, loader.ErrNoFinalCallback), errors.Is(err, loader.ErrBurstInProgress):
		return Get(BurstOrderingId)
	case errors.Is(err, namespace.ErrPathConflict):
		return Get(NamespaceConflictId)
	case errors.Is(err, fetch.ErrInvalidArtifact), errors.Is(err, fetch.ErrUnsupportedArtifact):
		return Get(ArtifactInvalidId)
	case errors.Is(err, loader.ErrFetchFailed):
		return Get(FetchFailedId)
	case errors.Is(err, catalog.ErrUnsupportedFormat), errors.Is(err, catalog.ErrDuplicateModule),
		errors.Is(err, catalog.ErrDuplicateVersion):
		return Get(CatalogLoadFailedId)
	}
	return nil
}
