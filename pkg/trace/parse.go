package trace

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/matzehuels/jappaper/pkg/errors"
)

// Entry is one imported record, 1-based as written by the user.
type Entry struct {
	Row  int    `json:"row"`
	Col  int    `json:"columns"`
	Char string `json:"character"`
}

// ParseResult is the outcome of [Parse].
type ParseResult struct {
	Entries []Entry
	// Skipped counts records that were dropped: not an object, missing or
	// non-numeric row/column, row/column below 1, or no character.
	Skipped int
}

// Parse decodes a bulk-import document. Only malformed JSON or a top level
// that is not an array is an error; individual bad records are skipped.
func Parse(data []byte) (ParseResult, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return ParseResult{}, errors.New(errors.ErrCodeInvalidImport, "input must be a JSON array")
	}
	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return ParseResult{}, errors.Wrap(errors.ErrCodeInvalidImport, err, "invalid JSON")
	}

	var res ParseResult
	for _, raw := range records {
		e, ok := parseRecord(raw)
		if !ok {
			res.Skipped++
			continue
		}
		res.Entries = append(res.Entries, e)
	}
	return res, nil
}

func parseRecord(raw json.RawMessage) (Entry, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Entry{}, false
	}

	row, ok := leadingInt(fields["row"])
	if !ok || row < 1 {
		return Entry{}, false
	}
	col, ok := leadingInt(firstSet(fields, "columns", "column"))
	if !ok || col < 1 {
		return Entry{}, false
	}
	char := stringValue(firstSet(fields, "character", "charecter"))
	if char == "" {
		return Entry{}, false
	}
	return Entry{Row: row, Col: col, Char: norm.NFC.String(char)}, true
}

// firstSet returns the first of keys whose value is not null, false, zero or
// an empty string.
func firstSet(fields map[string]json.RawMessage, keys ...string) json.RawMessage {
	for _, k := range keys {
		if v, ok := fields[k]; ok && !blank(v) {
			return v
		}
	}
	return nil
}

func blank(v json.RawMessage) bool {
	switch string(bytes.TrimSpace(v)) {
	case "", "null", "false", `""`:
		return true
	}
	var f float64
	if json.Unmarshal(v, &f) == nil {
		return f == 0
	}
	return false
}

var leadingIntRe = regexp.MustCompile(`^\s*([+-]?[0-9]+)`)

// leadingInt reads an integer from a JSON number or string the way a lenient
// parser does: leading whitespace is skipped and parsing stops at the first
// non-digit.
func leadingInt(v json.RawMessage) (int, bool) {
	if len(v) == 0 {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(v, &f); err == nil {
		if math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
			return 0, false
		}
		return int(math.Trunc(f)), true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return 0, false
	}
	m := leadingIntRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func stringValue(v json.RawMessage) string {
	var s string
	if len(v) == 0 || json.Unmarshal(v, &s) != nil {
		return ""
	}
	return s
}
