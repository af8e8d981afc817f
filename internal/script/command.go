package script

import (
	"fmt"
	"strings"
)

// BuildCommand wraps the assembled script into a single shell-executable
// command. With a hosted URL the command streams and executes it; with an
// empty URL (upload failed, disabled, or returned nothing) the full script
// text is inlined so the card still works without the paste host.
func BuildCommand(scriptText, hostedURL string) string {
	if hostedURL != "" {
		return fmt.Sprintf("curl -s %s | bash", hostedURL)
	}
	return fmt.Sprintf("echo \"%s\" | bash", EscapeInline(scriptText))
}

// EscapeInline escapes script text for embedding inside a double-quoted
// shell argument. Backslash, double quote, dollar, and backtick are the
// only characters double quotes do not protect; escaping exactly those
// makes the transformation reversible, so the executed script is
// byte-identical to the assembled one.
func EscapeInline(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"$", `\$`,
		"`", "\\`",
	)
	return r.Replace(s)
}
