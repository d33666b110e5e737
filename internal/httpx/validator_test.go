package httpx

import (
	"strings"
	"testing"
)

type commandInput struct {
	Type  string `json:"type" validate:"required,oneof=search select"`
	ID    string `json:"id" validate:"omitempty,record_id"`
	Title string `json:"title" validate:"max=5"`
	Note  string `validate:"max=2"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name      string
		input     commandInput
		wantField string
		wantMsg   string
	}{
		{name: "valid", input: commandInput{Type: "select", ID: "a-1_b"}},
		{name: "required", input: commandInput{}, wantField: "type", wantMsg: "required"},
		{name: "oneof", input: commandInput{Type: "jump"}, wantField: "type", wantMsg: "one of: search select"},
		{name: "dotted id", input: commandInput{Type: "select", ID: "a.b"}, wantField: "id", wantMsg: "record id"},
		{name: "record id", input: commandInput{Type: "select", ID: "a b"}, wantField: "id", wantMsg: "record id"},
		{name: "max", input: commandInput{Type: "search", Title: "toolong"}, wantField: "title", wantMsg: "at most 5"},
		{name: "untagged field keeps go name", input: commandInput{Type: "search", Note: "abc"}, wantField: "Note", wantMsg: "at most 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Fatalf("Expected no validation errors, got %v", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Expected one validation error, got %v", errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Expected field %s, got %s", tt.wantField, errs[0].Field)
			}
			if !strings.Contains(errs[0].Message, tt.wantMsg) {
				t.Errorf("Expected message containing %q, got %q", tt.wantMsg, errs[0].Message)
			}
		})
	}
}
