// Package deadlines extracts structured deadline items from meeting
// transcripts and normalizes their loosely-formatted date strings.
package deadlines

// Item is a single deadline extracted from a transcript.
//
// Date is the model's best-effort string (ISO preferred, natural language
// fallback). It is not validated at extraction time; treat it as untrusted
// text and normalize it at consumption time with NormalizeDate.
type Item struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Description string `json:"description"`
}
