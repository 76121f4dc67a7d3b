// Package response turns free-form model output into typed actions.
package response

import (
	"regexp"
	"strings"
	"unicode"

	m "guut.dev/pkg/guut/internal/model"
)

const fence = "```"

// DefaultTestLanguages are the fence languages accepted as runnable Go code.
var DefaultTestLanguages = []string{"go", "golang"}

// DefaultDebuggerLanguages are the fence languages accepted as debugger scripts.
var DefaultDebuggerLanguages = []string{"dlv", "debugger"}

var headline = regexp.MustCompile(`^(#+)\s+(.+)$`)

var headlineKeywords = []struct {
	prefix string
	kind   sectionKind
}{
	{"test", kindTest},
	{"experiment", kindExperiment},
	{"observ", kindObservation},
}

// Parser decodes model responses.
type Parser interface {
	// Parse returns the best-guess action of text plus an equivalence claim
	// when one was made.
	Parse(text string) m.ParseResult
	// LastCode returns the last runnable or untagged code block of text.
	LastCode(text string) (string, bool)
}

type sectionKind int

const (
	kindNone sectionKind = iota
	kindTest
	kindExperiment
	kindObservation
)

type section struct {
	kind  sectionKind
	level int

	// last block of each kind
	code     string
	debugger string
	// fallback is the last runnable or untagged block, in document order.
	fallback string
}

type scan struct {
	sections []*section
	claimed  bool
	lastCode string
}

type parser struct {
	testLanguages     map[string]struct{}
	debuggerLanguages map[string]struct{}
}

// NewParser creates a Parser that accepts the given fence languages.
func NewParser(testLanguages, debuggerLanguages []string) Parser {
	return &parser{
		testLanguages:     languageSet(testLanguages),
		debuggerLanguages: languageSet(debuggerLanguages),
	}
}

func languageSet(languages []string) map[string]struct{} {
	set := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		set[strings.ToLower(lang)] = struct{}{}
	}

	return set
}

func (p *parser) Parse(text string) m.ParseResult {
	s := p.scan(text)

	result := m.ParseResult{Action: resolve(s.sections)}
	if s.claimed {
		result.Claim = &m.EquivalenceClaim{Text: strings.TrimSpace(text)}
	}

	return result
}

func (p *parser) LastCode(text string) (string, bool) {
	s := p.scan(text)
	return s.lastCode, s.lastCode != ""
}

func resolve(sections []*section) m.Action {
	if s := lastWithCode(sections, kindTest); s != nil {
		return m.Test{Code: s.code}
	}

	if s := lastWithCode(sections, kindExperiment); s != nil {
		return m.Experiment{Kind: m.KindExperiment, Code: s.code, DebuggerScript: s.debugger}
	}

	if s := lastWithCode(sections, kindObservation); s != nil {
		return m.Experiment{Kind: m.KindObservation, Code: s.code, DebuggerScript: s.debugger}
	}

	for i := len(sections) - 1; i >= 0; i-- {
		s := sections[i]
		if s.kind == kindNone && s.fallback != "" {
			return m.Code{Code: s.fallback, DebuggerScript: s.debugger}
		}
	}

	return nil
}

func lastWithCode(sections []*section, kind sectionKind) *section {
	for i := len(sections) - 1; i >= 0; i-- {
		if sections[i].kind == kind && sections[i].code != "" {
			return sections[i]
		}
	}

	return nil
}

func (p *parser) scan(text string) scan {
	current := &section{kind: kindNone}
	result := scan{sections: []*section{current}}

	inCode := false
	language := ""

	var block []string

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if inCode {
			closed := false

			switch {
			case strings.HasPrefix(trimmed, fence):
				closed = true
			case strings.HasSuffix(trimmed, fence):
				block = append(block, strings.TrimSuffix(strings.TrimRight(line, " \t\r"), fence))
				closed = true
			default:
				block = append(block, line)
			}

			if closed {
				inCode = false
				p.addBlock(&result, current, language, strings.Join(block, "\n"))
			}

			continue
		}

		if strings.HasPrefix(trimmed, fence) {
			inCode = true
			language = fenceLanguage(trimmed)
			block = nil

			continue
		}

		if isEquivalenceHeadline(trimmed) {
			result.claimed = true
		}

		if kind, level, ok := matchHeadline(trimmed); ok && (kind != current.kind || level <= current.level) {
			current = &section{kind: kind, level: level}
			result.sections = append(result.sections, current)
		}
	}

	return result
}

func (p *parser) addBlock(result *scan, s *section, language, content string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	if language == "" {
		s.fallback = content
		result.lastCode = content

		return
	}

	if _, ok := p.testLanguages[language]; ok {
		s.code = content
		s.fallback = content
		result.lastCode = content

		return
	}

	if _, ok := p.debuggerLanguages[language]; ok {
		s.debugger = content
	}
}

func fenceLanguage(line string) string {
	info := strings.TrimSpace(strings.TrimPrefix(line, fence))
	info = strings.TrimSuffix(info, fence)

	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	return strings.ToLower(fields[0])
}

// matchHeadline classifies a markdown headline by the first word that starts
// with one of the section keywords. Any words may precede the keyword.
func matchHeadline(line string) (sectionKind, int, bool) {
	match := headline.FindStringSubmatch(line)
	if match == nil {
		return kindNone, 0, false
	}

	for _, word := range headlineWords(match[2]) {
		for _, keyword := range headlineKeywords {
			if strings.HasPrefix(word, keyword.prefix) {
				return keyword.kind, len(match[1]), true
			}
		}
	}

	return kindNone, 0, false
}

func isEquivalenceHeadline(line string) bool {
	match := headline.FindStringSubmatch(line)
	if match == nil {
		return false
	}

	for _, word := range headlineWords(match[2]) {
		if strings.HasPrefix(word, "equivalen") {
			return true
		}
	}

	return false
}

func headlineWords(title string) []string {
	words := strings.Fields(strings.ToLower(title))
	for i, word := range words {
		words[i] = strings.TrimLeftFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r)
		})
	}

	return words
}

// RemoveStopWordResidue strips the tail a stop sequence leaves behind: blank
// lines and lines made only of comment markers. The newline ending the last
// kept line is preserved.
func RemoveStopWordResidue(text string) string {
	lines := strings.SplitAfter(text, "\n")
	for len(lines) > 0 && isResidue(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "")
}

func isResidue(line string) bool {
	trimmed := strings.TrimSpace(line)

	return strings.Trim(trimmed, "#/") == ""
}
