// Package guard enforces the no-acceptance rule on generated prospect turns.
// It is a precision-over-recall lexical filter: exact substring containment
// against a fixed phrase list, after whitespace removal. Phrasing outside the
// list (synonyms, polite-register variants) is deliberately not caught.
package guard

import (
	"strings"
	"unicode"
)

// Lexicon is the ordered list of forbidden acceptance phrases. Scanning stops
// at the first match, so order decides which phrase gets reported. Read-only
// after init; the prompt composer restates this list verbatim so instruction
// and enforcement stay in lockstep.
var Lexicon = []string{
	"加入します",
	"契約します",
	"前向きに検討",
	"申し込みます",
	"申し込みたい",
	"加入したい",
	"承諾します",
	"受け入れます",
	"賛成です",
	"了解しました",
	"是非お願いします",
	"入りたい",
	"検討します",
	"興味があります",
}

// ViolationWarning is the fixed message surfaced to callers when a generated
// turn contains acceptance language even after the corrective retry.
const ViolationWarning = "ロールプレイ規約違反の応答（受容表現）が検出されました。もう一度送ってください。"

// Match is the result of a lexicon scan.
type Match struct {
	Violated bool
	Phrase   string // the lexicon entry that matched, as written in Lexicon
}

// Scan reports whether text contains a forbidden acceptance phrase. Both the
// text and each phrase are compared with all whitespace stripped, so inserted
// spaces ("検討 します") cannot evade the scan. Case and script sensitive.
func Scan(text string) Match {
	normalized := stripWhitespace(text)
	for _, phrase := range Lexicon {
		if strings.Contains(normalized, stripWhitespace(phrase)) {
			return Match{Violated: true, Phrase: phrase}
		}
	}
	return Match{}
}

// Validate wraps Scan for the orchestrator: valid iff no lexicon phrase
// matches, otherwise the fixed human-readable warning.
func Validate(text string) (valid bool, warning string) {
	if Scan(text).Violated {
		return false, ViolationWarning
	}
	return true, ""
}

func stripWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
