package httputil

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOptionalStringTriState(t *testing.T) {
	type payload struct {
		FolderID OptionalString `json:"folderId"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{name: "absent", body: `{}`, wantPresent: false},
		{name: "null", body: `{"folderId": null}`, wantPresent: true, wantValue: nil},
		{name: "value", body: `{"folderId": "abc"}`, wantPresent: true, wantValue: strPtr("abc")},
		{name: "empty string", body: `{"folderId": ""}`, wantPresent: true, wantValue: strPtr("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.FolderID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.FolderID.Present, tt.wantPresent)
			}
			if tt.wantValue == nil {
				if p.FolderID.Value != nil {
					t.Errorf("Value = %q, want nil", *p.FolderID.Value)
				}
			} else if p.FolderID.Value == nil || *p.FolderID.Value != *tt.wantValue {
				t.Errorf("Value = %v, want %q", p.FolderID.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalStringRejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("unmarshal accepted a number")
	}
}

func TestOptionalStrings(t *testing.T) {
	type payload struct {
		Tags OptionalStrings `json:"tags"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValues  []string
	}{
		{name: "absent", body: `{}`, wantPresent: false},
		{name: "null treated as empty", body: `{"tags": null}`, wantPresent: true, wantValues: []string{}},
		{name: "empty list", body: `{"tags": []}`, wantPresent: true, wantValues: []string{}},
		{name: "values", body: `{"tags": ["a", "b"]}`, wantPresent: true, wantValues: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if p.Tags.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.Tags.Present, tt.wantPresent)
			}
			if tt.wantPresent && !reflect.DeepEqual(p.Tags.Values, tt.wantValues) {
				if !(len(p.Tags.Values) == 0 && len(tt.wantValues) == 0) {
					t.Errorf("Values = %v, want %v", p.Tags.Values, tt.wantValues)
				}
			}
		})
	}
}

func strPtr(s string) *string { return &s }
