package summarizer

import (
	"errors"
	"sort"
	"strings"
	"unicode"

	"text-summary/config"
)

// Summarizer derives extractive summaries: it selects the most
// representative sentences of a document instead of rewriting it.
type Summarizer struct {
	punkt        *PunktProvider
	maxSentences int
}

func New(cfg config.SummaryConfig) *Summarizer {
	max := cfg.MaxSentences
	if max <= 0 {
		max = 5
	}
	return &Summarizer{
		punkt:        NewPunktProvider(cfg.PunktDataURL, cfg.PunktCacheDir),
		maxSentences: max,
	}
}

// Summarize splits the text into sentences with the punkt tokenizer,
// scores each sentence by word frequency (with a bonus for title
// words), and re-emits the top sentences in document order, joined by
// newlines.
func (s *Summarizer) Summarize(title, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("summarizer: empty article text")
	}

	tok, err := s.punkt.Tokenizer()
	if err != nil {
		return "", err
	}

	var sents []string
	for _, sn := range tok.Tokenize(text) {
		if t := strings.TrimSpace(sn.Text); t != "" {
			sents = append(sents, t)
		}
	}
	if len(sents) == 0 {
		return "", errors.New("summarizer: no sentences found")
	}
	if len(sents) <= s.maxSentences {
		return strings.Join(sents, "\n"), nil
	}

	picked := selectSentences(title, sents, s.maxSentences)
	return strings.Join(picked, "\n"), nil
}

// selectSentences ranks sentences by summed word frequency plus a title
// bonus and returns the top n in their original order.
func selectSentences(title string, sents []string, n int) []string {
	freq := map[string]int{}
	for _, sent := range sents {
		for _, w := range tokenizeWords(sent) {
			freq[w]++
		}
	}

	titleWords := map[string]bool{}
	for _, w := range tokenizeWords(title) {
		titleWords[w] = true
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(sents))
	for i, sent := range sents {
		words := tokenizeWords(sent)
		if len(words) == 0 {
			continue
		}
		var sum float64
		for _, w := range words {
			sum += float64(freq[w])
			if titleWords[w] {
				sum += float64(len(sents)) // title words dominate plain frequency
			}
		}
		ranked = append(ranked, scored{idx: i, score: sum / float64(len(words))})
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if n > len(ranked) {
		n = len(ranked)
	}
	top := ranked[:n]
	sort.Slice(top, func(a, b int) bool { return top[a].idx < top[b].idx })

	out := make([]string, 0, n)
	for _, sc := range top {
		out = append(out, sents[sc.idx])
	}
	return out
}

// tokenizeWords lowercases and splits on non-letter/digit runes,
// dropping stopwords and single characters.
func tokenizeWords(s string) []string {
	raw := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	words := raw[:0]
	for _, w := range raw {
		if len(w) < 2 || stopWords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

var stopWords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "had": true,
	"has": true, "have": true, "he": true, "her": true, "his": true, "if": true,
	"in": true, "is": true, "it": true, "its": true, "of": true, "on": true,
	"or": true, "that": true, "the": true, "their": true, "they": true,
	"this": true, "to": true, "was": true, "were": true, "which": true,
	"will": true, "with": true, "you": true, "your": true, "we": true,
	"not": true, "no": true, "so": true, "can": true, "do": true, "does": true,
	"she": true, "them": true, "these": true, "those": true, "than": true,
	"then": true, "there": true, "what": true, "when": true, "who": true,
}
