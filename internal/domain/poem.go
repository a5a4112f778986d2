package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyTopic is returned when a poem has no topic.
var ErrEmptyTopic = errors.New("topic is required")

// ErrEmptyBody is returned when a poem has no generated text.
var ErrEmptyBody = errors.New("haiku body is required")

// Poem is a generated haiku together with the topic that seeded it.
// Records are append-only: they are never updated or deleted.
type Poem struct {
	Topic string `json:"topic"`
	Body  string `json:"haiku"`
}

// NewPoem builds a Poem after checking both fields are present.
// Parameters:
//   - topic: user supplied seed text.
//   - body: generated poem text.
//
// Returns:
//   - Poem: the validated record.
//   - error: ErrEmptyTopic or ErrEmptyBody when a field is blank.
func NewPoem(topic, body string) (Poem, error) {
	p := Poem{Topic: topic, Body: body}
	if err := p.Validate(); err != nil {
		return Poem{}, err
	}
	return p, nil
}

// Validate checks that both required fields are non-blank.
func (p Poem) Validate() error {
	if strings.TrimSpace(p.Topic) == "" {
		return ErrEmptyTopic
	}
	if strings.TrimSpace(p.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

// Lines splits the body into its non-empty lines.
func (p Poem) Lines() []string {
	raw := strings.Split(strings.ReplaceAll(p.Body, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if s := strings.TrimSpace(l); s != "" {
			lines = append(lines, s)
		}
	}
	return lines
}

// String returns a short human readable form used in logs.
func (p Poem) String() string {
	return fmt.Sprintf("%s: %s", p.Topic, strings.Join(p.Lines(), " / "))
}

// PoemFields is the loosely typed shape stores receive from external
// backends. It is converted to a Poem with PoemFromFields.
type PoemFields map[string]interface{}

// PoemFromFields converts an untyped row into a Poem. Both "topic" and
// "haiku" must be present, be strings and be non-blank.
func PoemFromFields(fields PoemFields) (Poem, error) {
	topic, err := stringField(fields, "topic")
	if err != nil {
		return Poem{}, err
	}
	body, err := stringField(fields, "haiku")
	if err != nil {
		return Poem{}, err
	}
	return NewPoem(topic, body)
}

func stringField(fields PoemFields, key string) (string, error) {
	v, ok := fields[key]
	if !ok || v == nil {
		return "", fmt.Errorf("field %q is missing", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, want string", key, v)
	}
	return s, nil
}
