package script

import "strings"

// Escape escapes literal double quotes in s for interpolation into a
// double-quoted shell string. Every untrusted value (bio, company,
// location, joke text, username, descriptions) must pass through here
// before it is embedded in the generated script; an unescaped quote breaks
// the script syntactically.
func Escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// EchoLine wraps already-escaped text as a plain echo display instruction.
func EchoLine(s string) string {
	return `echo "` + s + `"`
}

// EchoColorLine wraps already-escaped text as an echo -e display
// instruction so ${COLOR} variable references and ANSI escapes expand.
func EchoColorLine(s string) string {
	return `echo -e "` + s + `"`
}
