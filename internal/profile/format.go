package profile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hpungsan/termcard/internal/script"
)

// Social handles are occasionally buried in bios as plain text; these pull
// out the first match. The youtube pattern keeps whichever path prefix
// (user/, channel/, @) the bio used.
var (
	linkedinRe = regexp.MustCompile(`linkedin\.com/in/([A-Za-z0-9_-]+)`)
	youtubeRe  = regexp.MustCompile(`youtube\.com/((?:user/|channel/|@)?[A-Za-z0-9_.-]+)`)
)

// Format renders a Record into the card's ordered display lines: intro,
// work/location labels, social links, top starred repositories, and recent
// activity. Every interpolated field is quote-escaped here, before it is
// wrapped into a display instruction.
func Format(r *Record) []string {
	name := r.Name
	if name == "" {
		name = r.Login
	}

	var lines []string

	if r.Bio != "" {
		lines = append(lines, script.EchoLine(fmt.Sprintf("I am %s, %s", script.Escape(name), script.Escape(r.Bio))))
	} else {
		lines = append(lines, script.EchoLine(fmt.Sprintf("%s, a developer on GitHub.", script.Escape(name))))
	}
	lines = append(lines, script.EchoLine(""))

	if r.Company != "" {
		company := strings.TrimPrefix(r.Company, "@")
		lines = append(lines, labelLine(script.VarBlueBG, "Work", script.Escape(company)))
	}
	if r.Location != "" {
		lines = append(lines, labelLine(script.VarBlueBG, "Location", script.Escape(r.Location)))
	}

	lines = append(lines, socialLines(r)...)
	lines = append(lines, repoLines(r.Repos)...)
	lines = append(lines, activityLines(r.Activity)...)

	return lines
}

// socialLines emits the social block in fixed order: GitHub (always),
// Twitter, LinkedIn and YouTube handles mined from the bio, then website.
func socialLines(r *Record) []string {
	var lines []string

	lines = append(lines, labelLine(script.VarMagentaBG, "GitHub", "https://github.com/"+script.Escape(r.Login)))

	if r.Twitter != "" {
		handle := strings.TrimPrefix(r.Twitter, "@")
		lines = append(lines, labelLine(script.VarCyanBG, "Twitter", "https://twitter.com/"+script.Escape(handle)))
	}

	if m := linkedinRe.FindStringSubmatch(r.Bio); m != nil {
		lines = append(lines, labelLine(script.VarCyanBG, "LinkedIn", "https://www.linkedin.com/in/"+m[1]))
	}
	if m := youtubeRe.FindStringSubmatch(r.Bio); m != nil {
		lines = append(lines, labelLine(script.VarRedBG, "YouTube", "https://www.youtube.com/"+m[1]))
	}

	if r.Blog != "" {
		lines = append(lines, labelLine(script.VarGreenBG, "Web", script.Escape(r.Blog)))
	}

	return lines
}

func repoLines(repos []RepoSummary) []string {
	if len(repos) == 0 {
		return nil
	}

	lines := []string{
		script.EchoLine(""),
		headerLine(script.VarMagentaBG, "Top Starred Repositories"),
	}
	for _, repo := range repos {
		bullet := "* " + script.Escape(repo.Name)
		if repo.Stars > 0 {
			bullet += fmt.Sprintf(" (%d⭐)", repo.Stars)
		}
		if repo.Description != "" {
			bullet += ": " + script.Escape(repo.Description)
		}
		lines = append(lines, script.EchoLine(bullet))
		lines = append(lines, script.EchoLine("  "+script.Escape(repo.URL)))
	}
	return lines
}

func activityLines(entries []ActivityEntry) []string {
	if len(entries) == 0 {
		return nil
	}

	lines := []string{
		script.EchoLine(""),
		headerLine(script.VarMagentaBG, "Recent Activity"),
	}
	for _, e := range entries {
		lines = append(lines, script.EchoLine(fmt.Sprintf("* %s %s", script.Escape(e.Action), script.Escape(e.Repo))))
		lines = append(lines, script.EchoLine("  "+script.Escape(e.URL)))
	}
	return lines
}

// labelLine renders a color-tagged "label value" line, e.g.
// echo -e "${BLU}${FGW}${PAD}Work${PAD}${RST} Acme Corp".
func labelLine(colorVar, label, value string) string {
	return script.EchoColorLine(fmt.Sprintf("${%s}${%s}${%s}%s${%s}${%s} %s",
		colorVar, script.VarFG, script.VarPad, label, script.VarPad, script.VarReset, value))
}

// headerLine renders a color-tagged section header with no value part.
func headerLine(colorVar, title string) string {
	return script.EchoColorLine(fmt.Sprintf("${%s}${%s}${%s}%s${%s}${%s}",
		colorVar, script.VarFG, script.VarPad, title, script.VarPad, script.VarReset))
}
