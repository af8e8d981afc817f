package script

import (
	"fmt"
	"strings"
)

// Theme selects the cosmetic preamble of the generated script.
type Theme int

const (
	ThemeClean Theme = iota
	ThemeLinux
	ThemeCowsay
	ThemeFiglet
)

// String returns the canonical theme name.
func (t Theme) String() string {
	switch t {
	case ThemeLinux:
		return "linux"
	case ThemeCowsay:
		return "cowsay"
	case ThemeFiglet:
		return "figlet"
	default:
		return "clean"
	}
}

// ParseTheme maps user input onto the closed theme set. Unknown, empty, or
// missing values resolve to the clean theme; parsing never fails.
func ParseTheme(s string) Theme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "linux", "linux-art", "tux":
		return ThemeLinux
	case "cowsay", "cow", "novelty-tool":
		return ThemeCowsay
	case "figlet", "banner", "banner-tool":
		return ThemeFiglet
	default:
		return ThemeClean
	}
}

// Themes lists the canonical theme names.
func Themes() []string {
	return []string{"clean", "linux", "cowsay", "figlet"}
}

// tuxArt is emitted verbatim for the linux theme. The quoted heredoc keeps
// the backslashes out of the shell's way.
const tuxArt = `cat << 'TUX'
    .--.
   |o_o |
   |:_/ |
  //   \ \
 (|     | )
/'\_   _/` + "`" + `\
\___)=(___/
TUX`

// Preamble renders the themed opening section of the script.
//
// The cowsay and figlet preambles check for the tool at script runtime, not
// at generation time: the machine that runs the card is rarely the machine
// that generated it. When the tool is missing the script prints install
// hints for common package managers and falls back to plain output.
func Preamble(t Theme, username, joke string) string {
	switch t {
	case ThemeClean:
		return ""
	case ThemeLinux:
		return tuxArt
	case ThemeCowsay:
		return cowsayPreamble(joke)
	case ThemeFiglet:
		return figletPreamble(username)
	}
	return ""
}

func cowsayPreamble(joke string) string {
	text := joke
	if text == "" {
		text = "Moo! Have a great day."
	}

	var b strings.Builder
	b.WriteString("if command -v cowsay >/dev/null 2>&1; then\n")
	fmt.Fprintf(&b, "  echo \"%s\" | cowsay\n", Escape(text))
	b.WriteString("else\n")
	b.WriteString("  echo \"cowsay is not installed :(\"\n")
	b.WriteString("  echo \"  brew install cowsay      # macOS\"\n")
	b.WriteString("  echo \"  sudo apt install cowsay  # Debian/Ubuntu\"\n")
	b.WriteString("  echo \"  sudo dnf install cowsay  # Fedora\"\n")
	if joke != "" {
		fmt.Fprintf(&b, "  echo \"%s\"\n", Escape(joke))
	}
	b.WriteString("fi")
	return b.String()
}

func figletPreamble(username string) string {
	name := Escape(username)

	var b strings.Builder
	b.WriteString("if command -v figlet >/dev/null 2>&1; then\n")
	fmt.Fprintf(&b, "  figlet \"%s\"\n", name)
	b.WriteString("else\n")
	b.WriteString("  echo \"figlet is not installed :(\"\n")
	b.WriteString("  echo \"  brew install figlet      # macOS\"\n")
	b.WriteString("  echo \"  sudo apt install figlet  # Debian/Ubuntu\"\n")
	b.WriteString("  echo \"  sudo dnf install figlet  # Fedora\"\n")
	fmt.Fprintf(&b, "  echo \"%s\"\n", name)
	b.WriteString("fi")
	return b.String()
}
