package deadlines

import "strings"

// StripCodeFence removes markdown code-fence wrapping from model output.
//
// Models are not fully compliant with "JSON only" instructions and sometimes
// wrap the array in ```json fences. This runs before every parse attempt.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
