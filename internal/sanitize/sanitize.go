// Package sanitize turns README-style markdown into plain lines that can be
// emitted literally by the generated script. The pipeline is an ordered
// chain of small text-to-text transforms; the order matters because later
// rules assume earlier ones already collapsed their patterns.
package sanitize

import (
	"regexp"
	"strings"

	"github.com/hpungsan/termcard/internal/script"
)

var (
	crlfRe       = regexp.MustCompile(`\r\n?`)
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	imageRe      = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkRe       = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	urlRe        = regexp.MustCompile(`https?://([^/\s)\]]+)[^\s)\]]*`)
	calloutRe    = regexp.MustCompile(`(?m)^[ \t]*>\s*\[!(?:NOTE|TIP|IMPORTANT|WARNING|CAUTION)\][^\n]*\n?`)
	headerRe     = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	emojiCodeRe  = regexp.MustCompile(`:[A-Za-z0-9_+-]+:`)
	blockquoteRe = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	blankRunRe   = regexp.MustCompile(`\n{3,}`)
	markupRe     = regexp.MustCompile("(\\*\\*|__|\\*|_|`)")
	bareURLRe    = regexp.MustCompile(`https?://\S+`)
)

// badgeHosts are stat/badge image services whose URLs carry no displayable
// text. Matched against the URL host in stripBadgeURLs and as substrings in
// dropBadgeLines.
var badgeHosts = []string{
	"shields.io",
	"img.shields.io",
	"komarev.com",
	"github-readme-stats.vercel.app",
	"github-readme-streak-stats.herokuapp.com",
}

// statSectionPhrases mark stats/badge section headers that are meaningless
// once their badge content is stripped. Compared against lower-cased
// trimmed lines.
var statSectionPhrases = []string{
	"tech stack",
	"my stats",
	"github stats",
	"streak",
	"skills",
	"badges",
	"languages & frameworks",
	"languages and frameworks",
	"tools i use",
}

// pureSyntaxTokens are lines that are markdown plumbing with no content.
var pureSyntaxTokens = map[string]bool{
	"---":  true,
	`\`:    true,
	`"\`:   true,
}

// Sanitize strips markdown/HTML syntax, badges, and noise sections from a
// document and returns ready-to-emit display instructions, one per
// surviving line. Any input degrades gracefully; the result may be empty.
func Sanitize(doc string) []string {
	lines := CleanLines(doc)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, script.EchoLine(script.Escape(line)))
	}
	return out
}

// CleanLines runs the text pipeline and returns the surviving plain lines,
// unescaped and unwrapped. Sanitize is CleanLines plus escaping.
func CleanLines(doc string) []string {
	doc = crlfRe.ReplaceAllString(doc, "\n")
	doc = stripHTMLTags(doc)
	doc = stripImages(doc)
	doc = collapseLinks(doc)
	doc = stripBadgeURLs(doc)
	doc = dropCallouts(doc)
	doc = stripHeaders(doc)
	doc = stripEmojiCodes(doc)
	doc = stripBlockquotes(doc)
	doc = collapseBlankRuns(doc)
	doc = normalizeEscapedQuotes(doc)

	var out []string
	for _, line := range strings.Split(doc, "\n") {
		if dropStatSectionHeader(line) || dropBadgeLine(line) {
			continue
		}
		cleaned, ok := cleanLine(line)
		if !ok {
			continue
		}
		out = append(out, cleaned)
	}
	return out
}

// Rule 1: remove all HTML tags.
func stripHTMLTags(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// Rule 2: remove image syntax entirely, alt text included.
func stripImages(s string) string {
	return imageRe.ReplaceAllString(s, "")
}

// Rule 3: collapse [text](url) to text; empty []() disappears with it.
func collapseLinks(s string) string {
	return linkRe.ReplaceAllString(s, "$1")
}

// Rule 4: remove URLs whose host is a known badge/stat service.
func stripBadgeURLs(s string) string {
	return urlRe.ReplaceAllStringFunc(s, func(u string) string {
		m := urlRe.FindStringSubmatch(u)
		host := strings.ToLower(m[1])
		for _, h := range badgeHosts {
			if host == h {
				return ""
			}
		}
		return u
	})
}

// Rule 5: drop callout/admonition lines (> [!NOTE] etc.) whole.
func dropCallouts(s string) string {
	return calloutRe.ReplaceAllString(s, "")
}

// Rule 6: keep heading text, drop the marker.
func stripHeaders(s string) string {
	return headerRe.ReplaceAllString(s, "")
}

// Rule 7: remove :shortcode: emoji tokens.
func stripEmojiCodes(s string) string {
	return emojiCodeRe.ReplaceAllString(s, "")
}

// Rule 8: remove leading blockquote markers.
func stripBlockquotes(s string) string {
	return blockquoteRe.ReplaceAllString(s, "")
}

// Rule 9: collapse runs of blank lines to a single blank line.
func collapseBlankRuns(s string) string {
	return blankRunRe.ReplaceAllString(s, "\n\n")
}

// Rule 10: turn escaped double quotes into single quotes so the final
// escaping pass cannot double-escape them.
func normalizeEscapedQuotes(s string) string {
	return strings.ReplaceAll(s, `\"`, "'")
}

// Rule 11: drop stats-section header lines wholesale.
func dropStatSectionHeader(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}
	for _, phrase := range statSectionPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// Rule 12: drop any line still carrying a badge host or an image pattern
// the earlier single-line rules missed.
func dropBadgeLine(line string) bool {
	for _, h := range badgeHosts {
		if strings.Contains(line, h) {
			return true
		}
	}
	return strings.Contains(line, "<img") || strings.Contains(line, "![")
}

// Rule 13: per-line cleanup. Returns false when nothing displayable is
// left.
func cleanLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || pureSyntaxTokens[line] || strings.HasPrefix(line, "```") {
		return "", false
	}

	line = markupRe.ReplaceAllString(line, "")
	line = bareURLRe.ReplaceAllString(line, "")
	line = strings.TrimPrefix(line, "- ")
	line = strings.TrimSpace(line)

	if line == "" {
		return "", false
	}
	return line, true
}
