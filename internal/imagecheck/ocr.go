package imagecheck

import "strings"

// ocrHasAILabel reports whether the joined OCR text mentions any AI keyword.
func ocrHasAILabel(lines []string) bool {
	if len(lines) == 0 {
		return false
	}
	return containsAIKeyword(strings.ToLower(strings.Join(lines, " ")))
}
