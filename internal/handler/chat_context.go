package handler

import (
	"strings"

	"github.com/twaasoulElm3refa/editor-tool/internal/model"
)

const (
	summaryFieldLimit = 600
	articleFieldLimit = 800
	newsQueryLimit    = 120
)

// searchCommandPrefixes mark an explicit search request at the start of a
// chat message; the remainder of the message is the query.
var searchCommandPrefixes = []string{"search:", "بحث:"}

// freshnessKeywords are the manual trigger heuristic for news search. Best
// effort only; it may over-trigger and it may miss real queries.
var freshnessKeywords = []string{
	"latest", "today", "update", "breaking", "recent news",
	"أحدث", "اليوم", "آخر الأخبار", "مستجدات", "عاجل",
}

// fillerPhrases are stripped from a freshness sentence before it is used as
// a search query.
var fillerPhrases = []string{
	"what is", "what are", "tell me about", "can you", "please",
	"ما هي", "ما هو", "أخبرني عن", "هل يمكنك", "من فضلك",
}

// truncateField caps a context field at limit characters, appending an
// ellipsis marker when anything was cut. Counted in runes, not bytes; the
// working language is Arabic.
func truncateField(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

// buildChatContext folds the first visible value into a labelled Arabic
// context block. Long fields are truncated so the snapshot cannot crowd out
// the conversation itself.
func buildChatContext(values []model.VisibleValue) string {
	if len(values) == 0 {
		return ""
	}

	v := values[0]
	var sb strings.Builder

	writeLine := func(label, value string, limit int) {
		value = strings.TrimSpace(value)
		if value == "" {
			return
		}
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(truncateField(value, limit))
		sb.WriteString("\n")
	}

	writeLine("الجهة", v.OrganizationName, summaryFieldLimit)
	writeLine("نبذة عن الخبر", v.AboutPress, summaryFieldLimit)
	writeLine("تاريخ الخبر", v.PressDate, summaryFieldLimit)
	writeLine("النص المدخل", v.Article, articleFieldLimit)
	writeLine("النتيجة الحالية", v.Result, summaryFieldLimit)

	if sb.Len() == 0 {
		return ""
	}

	return "معلومات شاشة التحرير الحالية:\n" + sb.String()
}

// searchCommand returns the query of an explicit search command, or "" when
// the message carries none.
func searchCommand(message string) string {
	trimmed := strings.TrimSpace(message)
	lowered := strings.ToLower(trimmed)

	for _, prefix := range searchCommandPrefixes {
		if strings.HasPrefix(lowered, prefix) {
			return strings.TrimSpace(trimmed[len(prefix):])
		}
	}
	return ""
}

func containsFreshnessKeyword(message string) bool {
	lowered := strings.ToLower(message)
	for _, keyword := range freshnessKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// shouldSearchNews decides whether this chat turn gets a news block.
func shouldSearchNews(message string, autoSearch bool) bool {
	if autoSearch {
		return true
	}
	if searchCommand(message) != "" {
		return true
	}
	return containsFreshnessKeyword(message)
}

// freshnessSentence picks the first sentence carrying a freshness keyword
// and strips filler phrasing from it.
func freshnessSentence(message string) string {
	sentences := strings.FieldsFunc(message, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '؟' || r == '\n'
	})

	for _, sentence := range sentences {
		if !containsFreshnessKeyword(sentence) {
			continue
		}

		cleaned := sentence
		lowered := strings.ToLower(cleaned)
		for _, filler := range fillerPhrases {
			if idx := strings.Index(lowered, filler); idx >= 0 {
				cleaned = cleaned[:idx] + cleaned[idx+len(filler):]
				lowered = strings.ToLower(cleaned)
			}
		}
		return strings.TrimSpace(cleaned)
	}
	return ""
}

// deriveNewsQuery builds the search query for a triggered turn: explicit
// command argument, then the cleaned freshness sentence, then the visible
// value's organization/summary/result, finally the raw message.
func deriveNewsQuery(message string, values []model.VisibleValue) string {
	query := searchCommand(message)

	if query == "" {
		query = freshnessSentence(message)
	}

	if query == "" && len(values) > 0 {
		for _, candidate := range []string{values[0].OrganizationName, values[0].AboutPress, values[0].Result} {
			if candidate = strings.TrimSpace(candidate); candidate != "" {
				query = candidate
				break
			}
		}
	}

	if query == "" {
		query = strings.TrimSpace(message)
	}

	if runes := []rune(query); len(runes) > newsQueryLimit {
		query = string(runes[:newsQueryLimit])
	}
	return query
}
