package llm

import "strings"

// CleanJSON strips the decoration models sometimes wrap around JSON output
// despite instructions: Markdown code fences and stray prose before or after
// the payload. It keeps only the outermost JSON object or array.
func CleanJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there's still junk around the JSON, keep only from the first
	// opening brace or bracket to its matching last closing one.
	objStart := strings.Index(s, "{")
	arrStart := strings.Index(s, "[")

	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}

	if start != -1 {
		if end := strings.LastIndex(s, closer); end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
