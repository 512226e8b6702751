package ingest

import "strings"

// chunkWords is how many words one chunk holds.
const chunkWords = 200

// SplitText splits text into chunks of up to chunkWords words. Whitespace
// runs collapse to single spaces. Blank input yields no chunks.
func SplitText(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]string, 0, (len(words)+chunkWords-1)/chunkWords)
	for start := 0; start < len(words); start += chunkWords {
		end := start + chunkWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}
