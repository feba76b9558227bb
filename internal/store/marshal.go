package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/fluxutil/internal/frozen"
)

// marshalAnnotation stores an annotation as a JSON array of [key, value]
// pairs in key order. Strings are written exactly as given; only the
// content_hash columns use canonical JSON.
func marshalAnnotation(a frozen.Map[string, string]) (string, error) {
	pairs := make([][2]string, 0, a.Len())
	for k, v := range a.All() {
		if !utf8.ValidString(k) || !utf8.ValidString(v) {
			return "", fmt.Errorf("marshal annotation: %q is not valid UTF-8", k)
		}
		pairs = append(pairs, [2]string{k, v})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(pairs); err != nil {
		return "", fmt.Errorf("marshal annotation: %w", err)
	}
	// Encoder adds a trailing newline, remove it
	return strings.TrimSpace(buf.String()), nil
}

func unmarshalAnnotation(data string) (frozen.Map[string, string], error) {
	if data == "" || data == "[]" {
		return frozen.Map[string, string]{}, nil
	}
	var pairs [][2]string
	if err := json.Unmarshal([]byte(data), &pairs); err != nil {
		return frozen.Map[string, string]{}, fmt.Errorf("unmarshal annotation: %w", err)
	}
	ps := make([]frozen.Pair[string, string], len(pairs))
	for i, p := range pairs {
		ps[i] = frozen.P(p[0], p[1])
	}
	return frozen.New(ps...), nil
}
