package domain

import (
	"errors"
	"testing"
)

func TestNewPoem(t *testing.T) {
	tests := []struct {
		name    string
		topic   string
		body    string
		wantErr error
	}{
		{name: "valid", topic: "ocean", body: "Waves kiss the cold shore"},
		{name: "empty topic", topic: "", body: "text", wantErr: ErrEmptyTopic},
		{name: "blank topic", topic: "   ", body: "text", wantErr: ErrEmptyTopic},
		{name: "empty body", topic: "ocean", body: "\n\t", wantErr: ErrEmptyBody},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPoem(tt.topic, tt.body)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if tt.wantErr == nil && (p.Topic != tt.topic || p.Body != tt.body) {
				t.Errorf("unexpected poem: %+v", p)
			}
		})
	}
}

func TestPoemFromFields(t *testing.T) {
	tests := []struct {
		name    string
		fields  PoemFields
		wantErr bool
	}{
		{name: "valid", fields: PoemFields{"topic": "moon", "haiku": "pale light", "id": 7}},
		{name: "missing haiku", fields: PoemFields{"topic": "moon"}, wantErr: true},
		{name: "null topic", fields: PoemFields{"topic": nil, "haiku": "x"}, wantErr: true},
		{name: "numeric topic", fields: PoemFields{"topic": 3.0, "haiku": "x"}, wantErr: true},
		{name: "blank haiku", fields: PoemFields{"topic": "moon", "haiku": " "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := PoemFromFields(tt.fields)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got poem %+v", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Topic != "moon" || p.Body != "pale light" {
				t.Errorf("unexpected poem: %+v", p)
			}
		})
	}
}

func TestPoemLines(t *testing.T) {
	p := Poem{Topic: "ocean", Body: "Waves kiss the cold shore\r\n\nMoonlight dances on the tide\n Silence holds the deep "}
	lines := p.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), lines)
	}
	if lines[2] != "Silence holds the deep" {
		t.Errorf("expected trimmed last line, got %q", lines[2])
	}
}

func TestErrorTypesUnwrap(t *testing.T) {
	cause := errors.New("connection refused")

	var genErr error = &GenerationError{Provider: "groq", Err: cause}
	if !errors.Is(genErr, cause) {
		t.Error("GenerationError should unwrap to its cause")
	}

	var storeErr error = &StoreError{Backend: "postgrest", Op: StoreOpList, Err: cause}
	var target *StoreError
	if !errors.As(storeErr, &target) || target.Op != StoreOpList {
		t.Errorf("expected StoreError with list op, got %v", storeErr)
	}
	if !errors.Is(storeErr, cause) {
		t.Error("StoreError should unwrap to its cause")
	}
}
