// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	LockfileNotFoundId Id = iota + 1
	LockfileParseErrorId
	PrefetchCommandNotFoundId
	PrefetchFailedId
	EntryDecodeFailedId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
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

// Markdown returns the page source including its "See also" links.
func (i *Issue) Markdown() string {
	var sb strings.Builder
	sb.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		sb.WriteString("\n\n## See also\n")
		for _, link := range append(i.DocLinks(), i.extLinks...) {
			sb.WriteString("- <" + string(link) + ">\n")
		}
	}
	return sb.String()
}

// Render renders the page for a terminal using the glamour style at stylePath
// (a builtin name such as "dark", "light" or "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	return render(i.Markdown(), stylePath)
}

var (
	render = glamour.Render

	lockfileNotFoundIssue = &Issue{
		id: LockfileNotFoundId,
		mdMsg: `
# No bun.lock found!

lockfetch reads the text lockfile that bun writes next to package.json.

## Things you can try:
- Run lockfetch from the project root, or pass the path explicitly:
~~~
$ lockfetch convert ./path/to/bun.lock
~~~

- Older projects may only have the binary bun.lockb. Generate the text format with:
~~~
$ bun install --save-text-lockfile
~~~`,
		docLinks: []HttpLink{"https://bun.sh/docs/install/lockfile"},
	}

	lockfileParseErrorIssue = &Issue{
		id: LockfileParseErrorId,
		mdMsg: `
# Failed to parse bun.lock!

The lockfile is not valid JSON (trailing commas are accepted), or its
"packages" section has an unexpected layout.

## Things you can try:
- Regenerate the lockfile:
~~~
$ rm bun.lock && bun install
~~~

- Check for merge conflict markers left in the file
- Run 'lockfetch inspect' to see which entries have an unexpected shape`,
		docLinks: []HttpLink{"https://bun.sh/docs/install/lockfile"},
	}

	prefetchCommandNotFoundIssue = &Issue{
		id: PrefetchCommandNotFoundId,
		mdMsg: `
# Prefetch command not found!

Git, GitHub and tarball dependencies carry no hash in bun.lock, so lockfetch
runs a nix prefetch command to compute one. The command is not on your PATH.

## Things you can try:
- Install Nix and make sure 'nix' is on your PATH
- Point lockfetch at a different command in your config file:
~~~cue
prefetch: {
	command: "/nix/var/nix/profiles/default/bin/nix flake prefetch --json"
}
~~~`,
		docLinks: []HttpLink{"https://nix.dev/install-nix"},
	}

	prefetchFailedIssue = &Issue{
		id: PrefetchFailedId,
		mdMsg: `
# Prefetching a dependency failed!

The prefetch command exited with an error or printed output without a hash.

## Common causes:
- No network access, or the host requires authentication
- The git revision or tarball no longer exists
- The nix-command and flakes experimental features are disabled

## Things you can try:
- Run the command by hand with the locator shown above
- Raise 'prefetch.attempts' or 'prefetch.timeout' for flaky networks
- Use '--skip-errors' to convert everything else and fix this entry later`,
		docLinks: []HttpLink{"https://nix.dev/manual/nix/stable/command-ref/new-cli/nix3-flake-prefetch"},
	}

	entryDecodeFailedIssue = &Issue{
		id: EntryDecodeFailedId,
		mdMsg: `
# A lockfile entry could not be converted!

The entry's identifier does not match the layout expected for its kind,
for example a git dependency without a '#revision'.

## Things you can try:
- Run 'lockfetch inspect' to see the entry's shape
- Pin the dependency to an exact revision in package.json and run 'bun install'
- Use '--skip-errors' to convert the remaining entries`,
		docLinks: []HttpLink{"https://bun.sh/docs/install/lockfile"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The config file exists but could not be read or does not match the schema.

## Things you can try:
- Show where lockfetch looks for its config:
~~~
$ lockfetch config path
~~~

- Recreate a default file after moving the broken one away:
~~~
$ lockfetch config init
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		lockfileNotFoundIssue.Id():        lockfileNotFoundIssue,
		lockfileParseErrorIssue.Id():      lockfileParseErrorIssue,
		prefetchCommandNotFoundIssue.Id(): prefetchCommandNotFoundIssue,
		prefetchFailedIssue.Id():          prefetchFailedIssue,
		entryDecodeFailedIssue.Id():       entryDecodeFailedIssue,
		configLoadFailedIssue.Id():        configLoadFailedIssue,
	}
)

// Values returns all issues ordered by id.
func Values() []*Issue {
	ids := maps.Keys(issues)
	slices.Sort(ids)
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
