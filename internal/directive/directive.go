// Package directive finds and decodes the canvas directive an AI reply
// can embed:
//
//	CANVAS_TOOL:[{"id":"1","type":"rectangle","x":10,...}]
//
// The JSON array runs to the end of the line.
package directive

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"MentorCanvas/internal/state"
)

// Tag prefixes the payload.
const Tag = "CANVAS_TOOL:"

var (
	// ErrNoDirective means the text carries no canvas directive.
	ErrNoDirective = errors.New("no canvas directive")
	// ErrMalformed means the directive payload is not an element array.
	ErrMalformed = errors.New("malformed canvas directive")
)

var pattern = regexp.MustCompile(regexp.QuoteMeta(Tag) + `(.+)`)

// Has reports whether content contains the directive tag at all.
func Has(content string) bool {
	return strings.Contains(content, Tag)
}

// Extract decodes the first canvas directive in content. Elements are
// normalized; missing ids are filled from ids (state.NewID when nil).
func Extract(content string, ids state.IDFunc) (state.Scene, error) {
	if !Has(content) {
		return nil, ErrNoDirective
	}
	m := pattern.FindStringSubmatch(content)
	if m == nil {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	scene, err := Decode([]byte(strings.TrimSpace(m[1])), ids)
	if err != nil {
		return nil, err
	}
	return scene, nil
}

// Decode parses a JSON element array.
func Decode(payload []byte, ids state.IDFunc) (state.Scene, error) {
	var scene state.Scene
	if err := json.Unmarshal(payload, &scene); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if scene == nil {
		return nil, fmt.Errorf("%w: null payload", ErrMalformed)
	}

	scene = scene.WithUniqueIDs(ids).Normalized()
	return scene, nil
}

// Format renders scene as a directive line.
func Format(scene state.Scene) (string, error) {
	if scene == nil {
		scene = state.Scene{}
	}
	b, err := json.Marshal(scene)
	if err != nil {
		return "", fmt.Errorf("encode directive: %w", err)
	}
	return Tag + string(b), nil
}

// Strip removes the directive from content, leaving the prose around it.
func Strip(content string) string {
	return strings.TrimSpace(pattern.ReplaceAllString(content, ""))
}
