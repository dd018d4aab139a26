package service

import (
	"regexp"
	"strings"

	"github.com/amemlabs/amem/internal/domain"
)

// fallbackConfidence is assigned to every pattern-extracted event. It sits
// deliberately below typical LLM extraction confidence.
const fallbackConfidence = 0.7

type factPattern struct {
	name string
	re   *regexp.Regexp
}

// factPatterns identify factual statements in user messages when the LLM
// path fails. Order matters: earlier, more specific patterns win the
// dedup against later generic ones (possession in particular fires on
// almost any "I have ..." sentence). Name and location captures accept any
// case for the first word but require capitalized continuation words, so
// the match stops at the proper noun instead of swallowing the rest of the
// sentence.
var factPatterns = []factPattern{
	{"name", regexp.MustCompile(
		`(?i:\bmy name is)\s+([A-Za-z][a-z]+(?:\s+[A-Z][a-z]+)*)`)},
	{"location", regexp.MustCompile(
		`(?i:\b(?:i live in|i'm from|i am from|i'm based in|i am based in|i reside in))\s+([A-Za-z][a-z]+(?:[,\s]+[A-Z][a-z]+)*)`)},
	{"location_in", regexp.MustCompile(
		`(?i:\b(?:engineer|developer|designer|manager|analyst|scientist|doctor|teacher|professor|architect|consultant|writer|artist)\s+in)\s+([A-Za-z][a-z]+(?:[,\s]+[A-Z][a-z]+)*)`)},
	{"profession", regexp.MustCompile(
		`(?i)\b(?:i'm a|i am a|i'm an|i am an)\s+(.+?)(?:\.|,|!|\bin\b|$)`)},
	{"specialization", regexp.MustCompile(
		`(?i)\b(?:i (?:specialize|specialise) in|i've been (?:doing|working (?:on|in|with)))\s+(.+?)(?:\.|,|!|$)`)},
	{"workplace", regexp.MustCompile(
		`(?i)\b(?:i work (?:at|for)|my (?:employer|company|workplace) is)\s+(.+?)(?:\.|,|$)`)},
	{"preference", regexp.MustCompile(
		`(?i)\b(?:i prefer|my fav(?:ou?rite)?\s+\w+\s+is|i (?:really )?like|i love)\s+(.+?)(?:\.|,|!|$)`)},
	{"tech", regexp.MustCompile(
		`(?i)\b(?:i use|we use|my (?:tech )?stack is|our stack is)\s+(.+?)(?:\.|,|$)`)},
	{"possession", regexp.MustCompile(
		`(?i)\bi have (?:a |an )?\s*(.+?)(?:\.|,|!|$)`)},
	{"vehicle_or_item", regexp.MustCompile(
		`(?i)\bi (?:now )?(?:drive|own|bought|got|ride)\s+(?:a |an |my )?\s*(.+?)(?:\.|,|!|$)`)},
	{"education", regexp.MustCompile(
		`(?i)\bi (?:studied|went to school|went to university|graduated from|attend(?:ed)?)\s+(?:at\s+)?(.+?)(?:\.|,|$)`)},
	{"project", regexp.MustCompile(
		`(?i)\b(?:i'm building|i am building|i want to build|i'm (?:working on|developing))\s+(.+?)(?:\.|,|!|$)`)},
	{"decision", regexp.MustCompile(
		`(?i)\b(?:i decided (?:to|on)|we decided (?:to|on)|we chose|let'?s use|we(?:'re| are) going with|i'll use)\s+(.+?)(?:\.|,|$)`)},
	{"correction", regexp.MustCompile(
		`(?i)\b(?:actually,?\s+i\s+(?:now|no longer)|correction:?)\s*(.+?)(?:\.|!|$)`)},
	{"health", regexp.MustCompile(
		`(?i)\b(?:i'm allergic to|i am allergic to|i'm (?:intolerant|sensitive) to)\s+(.+?)(?:\.|,|!|$)`)},
	{"activity", regexp.MustCompile(
		`(?i)\b(?:i'm training for|i am training for|i'm preparing for|i run|i play)\s+(.+?)(?:\.|,|!|$)`)},
	{"favourite", regexp.MustCompile(
		`(?i)\bmy\s+(?:new\s+)?(?:fav(?:ou?rite)?|preferred)\s+(\w+(?:\s+\w+)*)\s+is\s+(.+?)(?:\.|,|!|$)`)},
}

// fallbackExtract scans a user message with the pattern table and
// synthesizes low-confidence fact events. Last-resort path when structured
// extraction is unavailable or returns nothing; it favors missing a fact
// over inventing one. Empty or non-matching input yields an empty result.
func fallbackExtract(userMessage string) domain.ExtractionResult {
	var result domain.ExtractionResult
	if userMessage == "" {
		return result
	}

	seen := make(map[string]struct{})

	for _, fp := range factPatterns {
		for _, m := range fp.re.FindAllStringSubmatch(userMessage, -1) {
			var fact string

			if fp.name == "favourite" {
				category := strings.TrimSpace(m[1])
				value := trimCaptured(m[2])
				if len(value) < 2 {
					continue
				}
				fact = "User's favourite " + category + " is " + value
			} else {
				content := trimCaptured(m[1])
				if len(content) < 2 {
					continue
				}
				fact = synthesizeFact(fp.name, content, m[0])
			}

			key := strings.ToLower(fact)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			eventType := domain.EventTypeFact
			if fp.name == "decision" {
				eventType = domain.EventTypeDecision
			}
			result.Events = append(result.Events, domain.ExtractedEvent{
				Type:       eventType,
				Content:    fact,
				Confidence: fallbackConfidence,
			})
		}
	}

	return result
}

// synthesizeFact turns a captured fragment into a standalone statement.
func synthesizeFact(patternName, content, fullMatch string) string {
	switch patternName {
	case "name":
		return "User's name is " + content
	case "location", "location_in":
		return "User lives in " + content
	case "profession":
		return "User is a " + content
	case "specialization":
		return "User specializes in " + content
	case "workplace":
		return "User works at " + content
	case "preference":
		return capitalizeFirst(trimCaptured(fullMatch))
	case "tech":
		return "User's tech stack includes " + content
	case "possession", "vehicle_or_item":
		return "User has " + content
	case "education":
		return "User studied at " + content
	case "project":
		return "User is building " + content
	case "decision":
		return "Decision: " + content
	case "correction":
		return capitalizeFirst(content)
	case "health":
		return "User is allergic to " + content
	case "activity":
		return "User is training for " + content
	default:
		return content
	}
}

func trimCaptured(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,!?;:")
	return strings.TrimSpace(s)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
