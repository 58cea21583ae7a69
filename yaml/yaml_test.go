package yaml

import (
	"reflect"
	"testing"
)

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshal(t *testing.T) {
	data, err := New().Marshal(map[string]any{"name": "alice", "tags": []any{"a"}})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := "name: alice\ntags:\n    - a\n"
	if string(data) != want {
		t.Errorf("Marshal() = %q, want %q", data, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	tree := map[string]any{"outer": map[string]any{"inner": int64(1)}}

	tests := []struct {
		name   string
		indent string
		want   string
	}{
		{"two spaces", "  ", "outer:\n  inner: 1"},
		{"default width", "", "outer:\n    inner: 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := New().MarshalIndent(tree, "", tt.indent)
			if err != nil {
				t.Fatalf("MarshalIndent() error: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("MarshalIndent() = %q, want %q", data, tt.want)
			}
		})
	}
}

func TestUnmarshalTree(t *testing.T) {
	var out any
	if err := New().Unmarshal([]byte("a:\n  - 1\n  - x\n  - null\nb: true\n"), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	want := map[string]any{"a": []any{1, "x", nil}, "b": true}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("Unmarshal() = %#v, want %#v", out, want)
	}
}

func TestUnmarshalStruct(t *testing.T) {
	type config struct {
		Exclude []string `yaml:"exclude"`
	}

	var cfg config
	if err := New().Unmarshal([]byte("exclude: [password]\n"), &cfg); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Exclude, []string{"password"}) {
		t.Errorf("Exclude = %v", cfg.Exclude)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var out any
	if err := New().Unmarshal([]byte("a: [unterminated"), &out); err == nil {
		t.Error("Unmarshal() should fail on invalid YAML")
	}
}
