package script

import (
	"fmt"
	"strings"
)

// Assemble concatenates the final script: interpreter line, color constant
// definitions, themed preamble, profile display lines, and a closing line
// pointing at the subject's GitHub profile. The figlet theme additionally
// gets an attribution footer.
//
// Assemble performs no escaping of its own; every untrusted value inside
// preamble and profileLines was escaped by its producer.
func Assemble(preamble string, profileLines []string, theme Theme, username string) string {
	var b strings.Builder

	b.WriteString("#!/bin/bash\n\n")
	b.WriteString(colorDefs)
	b.WriteString("\n\n")

	if preamble != "" {
		b.WriteString(preamble)
		b.WriteString("\n\n")
	}

	for _, line := range profileLines {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(EchoLine(""))
	b.WriteString("\n")
	b.WriteString(EchoColorLine(fmt.Sprintf("${%s}https://github.com/%s${%s}", VarFG, Escape(username), VarReset)))
	b.WriteString("\n")

	if theme == ThemeFiglet {
		b.WriteString(EchoLine("banner rendered by figlet"))
		b.WriteString("\n")
	}

	return b.String()
}
