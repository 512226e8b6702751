package rag

import (
	"math"
	"strings"

	"supaagent/internal/vectorstore"
)

const (
	// minAbsoluteScore is the floor for the best match. If even the top
	// candidate scores below this, the whole result set is discarded.
	minAbsoluteScore = 0.15
	// minRelativeScore keeps only candidates scoring at least this fraction
	// of the top candidate's score.
	minRelativeScore = 0.55
	// maxContextChunks caps how many chunks survive relevance filtering.
	maxContextChunks = 5
	// maxContextTokens is the estimated-token budget for the context block.
	maxContextTokens = 900
	// tokensPerWord converts a word count into an estimated token count.
	tokensPerWord = 1.3
)

// filterByRelevance applies the absolute floor, the relative cutoff against
// the top score, and the chunk cap. Results must arrive sorted by score
// descending, which is how the vector store returns them.
func filterByRelevance(results []vectorstore.SearchResult) []vectorstore.SearchResult {
	if len(results) == 0 {
		return nil
	}
	top := results[0].Score
	if float64(top) < minAbsoluteScore {
		return nil
	}

	var kept []vectorstore.SearchResult
	for _, r := range results {
		if float64(r.Score) >= float64(top)*minRelativeScore {
			kept = append(kept, r)
		}
	}
	if len(kept) > maxContextChunks {
		kept = kept[:maxContextChunks]
	}
	return kept
}

// estimateTokens approximates the token count of text from its word count.
func estimateTokens(text string) int {
	words := len(strings.Fields(text))
	return int(math.Round(float64(words) * tokensPerWord))
}

// budgetChunks greedily takes candidates in order until the next one would
// push the running estimated-token total past the budget, then stops. Each
// taken candidate gets its EstTokens filled in.
func budgetChunks(cands []candidate) []candidate {
	var out []candidate
	running := 0
	for _, c := range cands {
		est := estimateTokens(c.Text)
		if running+est > maxContextTokens {
			break
		}
		c.EstTokens = est
		running += est
		out = append(out, c)
	}
	return out
}

// confidenceScore is the mean of each chunk's score relative to the top
// chunk's score, rounded to 3 decimals. Nil when no chunks were used.
func confidenceScore(cands []candidate) *float64 {
	if len(cands) == 0 {
		return nil
	}
	top := float64(cands[0].Score)
	if top <= 0 {
		return nil
	}
	sum := 0.0
	for _, c := range cands {
		sum += float64(c.Score) / top
	}
	v := math.Round(sum/float64(len(cands))*1000) / 1000
	return &v
}
