package render

import (
	"strings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`#`, `\#`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
)

// CardMarkdown builds the markdown for an advice card from the two
// display region values.
func CardMarkdown(id, advice string) string {
	var sb strings.Builder
	sb.WriteString("### ADVICE #")
	sb.WriteString(markdownEscaper.Replace(id))
	sb.WriteString("\n\n> ")
	sb.WriteString(markdownEscaper.Replace(advice))
	sb.WriteString("\n")
	return sb.String()
}

// Card renders an advice card for the terminal.
func Card(id, advice string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(CardMarkdown(id, advice))
}
