// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	InputNotFoundId Id = iota + 1
	MalformedIdentifierId
	ConfigLoadFailedId
	OutputWriteFailedId
	MatrixOutOfDateId
	InternalInvariantId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation for the failure mode
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

// Render renders the issue text with the given glamour style ("dark",
// "light", "auto", or a path to a JSON style).
func (i *Issue) Render(stylePath string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		md += "\n\n## See also\n"
		for _, link := range i.docLinks {
			md += "- <" + string(link) + ">\n"
		}
	}
	return render(md, stylePath)
}

var (
	render = glamour.Render

	inputNotFoundIssue = &Issue{
		id: InputNotFoundId,
		mdMsg: `
# Identifier list not found!

fcmgen reads one fully-qualified HAL identifier per line.

## Things you can try:
- Pass the list explicitly:
~~~
$ fcmgen generate path/to/fqnames.txt
~~~
- Read from standard input:
~~~
$ cat fqnames.txt | fcmgen generate -
~~~
- Set a default in your config file:
~~~cue
input: "vendor/fqnames.txt"
~~~`,
	}

	malformedIdentifierIssue = &Issue{
		id: MalformedIdentifierId,
		mdMsg: `
# Malformed identifier!

A line matched neither accepted identifier form, so no matrix was written.

## Accepted forms
~~~
android.hardware.foo@1.0::IFoo/default    (HIDL, versioned)
android.hardware.foo.IFoo/default         (AIDL)
android.hardware.foo.IFoo/default @2      (AIDL with revision pin)
~~~

## Things you can try:
- Fix or remove the reported line
- Comment it out with a leading '#'`,
		docLinks: []HttpLink{"https://source.android.com/docs/core/architecture/vintf/comp-matrices"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be loaded.

## Things you can try:
- Locate the file being read:
~~~
$ fcmgen config path
~~~
- Recreate the default configuration:
~~~
$ fcmgen config init --force
~~~`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the matrix!

The output file was left untouched.

## Things you can try:
- Check that the output directory exists and is writable
- Write to standard output and redirect instead:
~~~
$ fcmgen generate fqnames.txt > compatibility_matrix.xml
~~~`,
	}

	matrixOutOfDateIssue = &Issue{
		id: MatrixOutOfDateId,
		mdMsg: `
# Compatibility matrix is out of date!

The existing matrix does not match what the identifier list produces.

## Things you can try:
- Regenerate it:
~~~
$ fcmgen generate fqnames.txt -o compatibility_matrix.xml
~~~`,
	}

	internalInvariantIssue = &Issue{
		id: InternalInvariantId,
		mdMsg: `
# Internal error!

Two entries with different identities were merged. This is a bug in fcmgen,
not a problem with your input. Please report it together with the input list.`,
	}

	issues = map[Id]*Issue{
		inputNotFoundIssue.Id():       inputNotFoundIssue,
		malformedIdentifierIssue.Id(): malformedIdentifierIssue,
		configLoadFailedIssue.Id():    configLoadFailedIssue,
		outputWriteFailedIssue.Id():   outputWriteFailedIssue,
		matrixOutOfDateIssue.Id():     matrixOutOfDateIssue,
		internalInvariantIssue.Id():   internalInvariantIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	values := slices.Collect(maps.Values(issues))
	slices.SortFunc(values, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
