package script

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Content is the classified text of one region: the concatenated bracketed
// instruction spans and the concatenated narration spans, both in encounter
// order.
type Content struct {
	Instruction string
	Narration   string
}

// patterns are the compiled regular expressions for one bracket/timecode
// configuration. Compilation is cached per configuration because Classify
// runs once per region.
type patterns struct {
	bracket *regexp.Regexp
	leadTC  *regexp.Regexp
}

var (
	patternMu    sync.Mutex
	patternCache = map[string]*patterns{}

	spaceRun = regexp.MustCompile(`\s+`)
)

func compiledPatterns(cfg Config) *patterns {
	key := fmt.Sprintf("%s|%s|%d|%d", cfg.OpenBracket, cfg.CloseBracket, cfg.MinTimecodeDigits, cfg.MaxTimecodeDigits)
	patternMu.Lock()
	defer patternMu.Unlock()
	if p, ok := patternCache[key]; ok {
		return p
	}
	open := regexp.QuoteMeta(cfg.OpenBracket)
	closing := regexp.QuoteMeta(cfg.CloseBracket)
	p := &patterns{
		bracket: regexp.MustCompile(open + `([^` + closing + `]*)` + closing),
		leadTC:  regexp.MustCompile(fmt.Sprintf(`^\d{%d,%d}\s*`, cfg.MinTimecodeDigits, cfg.MaxTimecodeDigits)),
	}
	patternCache[key] = p
	return p
}

// Classify splits a region's lines into instruction and narration text.
// Bracketed spans become instruction text unless they contain a configured
// sound keyword; everything else is narration, joined with single spaces in
// line order. A region with no narration is valid and yields an entry with
// an empty narration string.
func Classify(region Region, cfg Config) Content {
	p := compiledPatterns(cfg)

	var instructions []string
	var narration []string

	for _, line := range region.Lines {
		text := line.Text
		if cfg.StripLeadingTimecode {
			text = p.leadTC.ReplaceAllString(text, "")
		}

		text = p.bracket.ReplaceAllStringFunc(text, func(span string) string {
			inner := strings.TrimSpace(span[len(cfg.OpenBracket) : len(span)-len(cfg.CloseBracket)])
			if inner != "" && !isSoundNote(inner, cfg.SoundKeywords) {
				instructions = append(instructions, inner)
			}
			return " "
		})

		if text = strings.TrimSpace(text); text != "" {
			narration = append(narration, text)
		}
	}

	return Content{
		Instruction: collapse(strings.Join(instructions, " ")),
		Narration:   cleanNarration(strings.Join(narration, " "), cfg),
	}
}

// cleanNarration applies the configured text cleanup to assembled narration.
func cleanNarration(s string, cfg Config) string {
	if cfg.RemoveSlashes {
		s = strings.ReplaceAll(s, "/", " ")
	}
	if cfg.RemovePeriods {
		s = strings.ReplaceAll(s, ".", " ")
	}
	return collapse(s)
}

func collapse(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

func isSoundNote(instr string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(instr, kw) {
			return true
		}
	}
	return false
}
