// Package langdetect recognizes source code in pasted plain text.
// It uses go-enry for shebang, modeline and classifier based detection, and a
// small set of patterns for snippets too short for the classifier.
package langdetect

import (
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language is recognized.
const Text = "text"

// candidates limits the classifier to languages people commonly paste.
//
//nolint:gochecknoglobals // read-only candidate list
var candidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "PHP", "Dockerfile",
}

type pattern struct {
	lang string
	re   *regexp.Regexp
}

// patterns are checked in order; the first match wins. Each pattern needs
// syntax that is unlikely in prose.
//
//nolint:gochecknoglobals // compiled patterns are read-only
var patterns = []pattern{
	{"go", regexp.MustCompile(`(?m)^package \w+$|^func (\(\w+ \*?\w+\) )?\w+\(`)},
	{"python", regexp.MustCompile(`(?m)^(def|class) \w+.*:$|^from [\w.]+ import |__name__ == ['"]__main__['"]`)},
	{"rust", regexp.MustCompile(`(?m)^\s*(pub )?fn \w+\(.*\)|println!\(|let mut \w+`)},
	{"php", regexp.MustCompile(`^<\?php`)},
	{"html", regexp.MustCompile(`(?i)<!doctype html|<html[\s>]|<head>|<body[\s>]`)},
	{"json", regexp.MustCompile(`^\s*[\[{]\s*"[^"]*"\s*:`)},
	{"sql", regexp.MustCompile(`(?i)^\s*(select .+ from |insert into |update \w+ set |delete from |create (table|index) )`)},
	{"dockerfile", regexp.MustCompile(`(?m)^FROM \S+(\n|$)(?s:.*)^(RUN|COPY|CMD|WORKDIR) `)},
	{"javascript", regexp.MustCompile(`(?m)console\.log\(|^\s*(const|let|var) \w+ = .*;$|\) => \{`)},
	{"css", regexp.MustCompile(`(?m)^[.#]?[\w-]+\s*\{\s*$|^\s*[\w-]+:\s*[^;]+;\s*$`)},
	{"c", regexp.MustCompile(`(?m)^#include [<"]`)},
}

// Detect returns the language of content, or Text when none is recognized
// with confidence.
func Detect(content []byte) string {
	if len(strings.TrimSpace(string(content))) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}
	if lang, safe := enry.GetLanguageByModeline(content); safe {
		return normalize(lang)
	}

	s := string(content)
	for _, p := range patterns {
		if p.re.MatchString(s) {
			return p.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return Text
}

// IsCode reports whether text looks like source code rather than prose, and
// returns the detected language. Prose-like languages never count as code.
func IsCode(text string) (string, bool) {
	lang := Detect([]byte(text))
	if lang == Text {
		return "", false
	}
	switch enry.GetLanguageType(displayName(lang)) {
	case enry.Prose, enry.Unknown:
		return "", false
	default:
		return lang, true
	}
}

// normalize converts enry language names to lowercase identifiers.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return "bash"
	case "C++":
		return "cpp"
	default:
		return strings.ToLower(lang)
	}
}

// displayName maps an identifier back to the enry language name.
func displayName(lang string) string {
	switch lang {
	case "bash":
		return "Shell"
	case "cpp":
		return "C++"
	}
	if name, ok := enry.GetLanguageByAlias(lang); ok {
		return name
	}
	return lang
}
