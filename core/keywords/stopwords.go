package keywords

// pageStopWords filters the full, frequency-ranked extraction. The list is
// kept as shipped; "time", "oil" and friends are there on purpose.
var pageStopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "by": {}, "for": {},
	"from": {}, "has": {}, "he": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"that": {}, "the": {}, "to": {}, "was": {}, "were": {}, "will": {}, "with": {},
	"this": {}, "but": {}, "they": {}, "have": {}, "had": {}, "what": {}, "said": {}, "each": {},
	"which": {}, "she": {}, "do": {}, "how": {}, "their": {}, "if": {}, "up": {}, "out": {}, "many": {},
	"then": {}, "them": {}, "these": {}, "so": {}, "some": {}, "her": {}, "would": {}, "make": {},
	"like": {}, "into": {}, "him": {}, "time": {}, "two": {}, "more": {}, "go": {}, "no": {}, "way": {},
	"could": {}, "my": {}, "than": {}, "first": {}, "been": {}, "call": {}, "who": {}, "oil": {},
	"sit": {}, "now": {}, "find": {}, "down": {}, "day": {}, "did": {}, "get": {}, "come": {}, "made": {},
	"may": {}, "part": {},
}

// titleStopWords filters the degraded, title-only extraction. It is a
// different, smaller list that also covers common Japanese particles.
var titleStopWords = map[string]struct{}{
	"です": {}, "ます": {}, "こと": {}, "ため": {}, "について": {}, "から": {}, "まで": {},
	"の": {}, "に": {}, "を": {}, "は": {}, "が": {}, "で": {}, "と": {},
	"a": {}, "the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// IsStopWord reports whether word is filtered by the ranked extraction.
// Words shorter than three characters count as stop words.
func IsStopWord(word string) bool {
	if len([]rune(word)) < minASCIILen {
		return true
	}
	_, ok := pageStopWords[word]
	return ok
}

func isTitleStopWord(word string) bool {
	_, ok := titleStopWords[word]
	return ok
}
