// SPDX-License-Identifier: MPL-2.0

package render

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"lockfetch-cli/pkg/fetcher"
)

const nixHeader = `# This file was generated by lockfetch; do not edit.
{
  fetchurl,
  fetchgit,
  fetchFromGitHub,
  copyPathToStore,
  ...
}:
{
`

//go:embed templates/*.nix.tmpl
var templateFS embed.FS

var nixTemplates = template.Must(
	template.New("nix").
		Funcs(template.FuncMap{"nix": NixString}).
		ParseFS(templateFS, "templates/*.nix.tmpl"),
)

var nixEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"${", `\${`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// NixString quotes s as a Nix double-quoted string literal.
func NixString(s string) string {
	return `"` + nixEscaper.Replace(s) + `"`
}

func renderNix(w io.Writer, pkgs []fetcher.Package) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(nixHeader)

	var body bytes.Buffer
	for _, p := range pkgs {
		body.Reset()
		name := p.Kind().String() + ".nix.tmpl"
		if err := nixTemplates.ExecuteTemplate(&body, name, p.Fetcher); err != nil {
			return fmt.Errorf("rendering %q: %w", p.Name, err)
		}
		fmt.Fprintf(bw, "  %s = %s;\n", NixString(p.Name), bytes.TrimSpace(body.Bytes()))
	}

	bw.WriteString("}\n")
	return bw.Flush()
}
