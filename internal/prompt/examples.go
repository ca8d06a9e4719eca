package prompt

import "strings"

const maxExamples = 5

// SelectRelevantExamples picks up to five canned utterances for the prompt.
// Priority order: examples sharing a token with the message, examples
// mentioning the current emotion label, then everything else; duplicates are
// dropped while preserving first occurrence.
func SelectRelevantExamples(message string, examples []string, currentEmotion string) []string {
	keywords := strings.Fields(message)

	var keywordMatches []string
	for _, example := range examples {
		for _, keyword := range keywords {
			if strings.Contains(example, keyword) {
				keywordMatches = append(keywordMatches, example)
				break
			}
		}
	}

	var emotionMatches []string
	if currentEmotion != "" {
		for _, example := range examples {
			if strings.Contains(example, currentEmotion) {
				emotionMatches = append(emotionMatches, example)
			}
		}
	}

	seen := make(map[string]bool)
	var selected []string
	for _, group := range [][]string{keywordMatches, emotionMatches, examples} {
		for _, example := range group {
			if seen[example] {
				continue
			}
			seen[example] = true
			selected = append(selected, example)
			if len(selected) == maxExamples {
				return selected
			}
		}
	}
	return selected
}
