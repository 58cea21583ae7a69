package xml

import (
	"reflect"
	"strings"
	"testing"
)

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/xml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/xml")
	}
}

func TestMarshalTree(t *testing.T) {
	tree := map[string]any{
		"name": "alice",
		"n":    int64(2),
		"ok":   true,
		"none": nil,
		"list": []any{"a"},
		"1bad": "x",
	}

	data, err := New().Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	want := `<root type="object">` +
		`<entry key="1bad">x</entry>` +
		`<list type="array"><item>a</item></list>` +
		`<n type="number">2</n>` +
		`<name>alice</name>` +
		`<none type="null"></none>` +
		`<ok type="boolean">true</ok>` +
		`</root>`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}
}

func TestMarshalIndent(t *testing.T) {
	data, err := New().MarshalIndent(map[string]any{"a": "b"}, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error: %v", err)
	}

	want := "<root type=\"object\">\n  <a>b</a>\n</root>"
	if string(data) != want {
		t.Errorf("MarshalIndent() = %q, want %q", data, want)
	}
}

func TestMarshalEscapes(t *testing.T) {
	data, err := New().Marshal(map[string]any{"a": "<&>"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), "&lt;&amp;&gt;") {
		t.Errorf("Marshal() = %s, want escaped text", data)
	}
}

func TestRoundTripTree(t *testing.T) {
	c := New()
	tree := map[string]any{
		"name":  "alice",
		"n":     float64(2.5),
		"ok":    false,
		"none":  nil,
		"empty": map[string]any{},
		"list":  []any{"a", float64(1), []any{}},
		"xmlns": "reserved",
		"a b":   "spaced",
	}

	data, err := c.Marshal(tree)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var out any
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(out, tree) {
		t.Errorf("round-trip = %#v, want %#v", out, tree)
	}
}

func TestMarshalStruct(t *testing.T) {
	type user struct {
		Name string `xml:"name"`
	}

	data, err := New().Marshal(user{Name: "alice"})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != "<user><name>alice</name></user>" {
		t.Errorf("Marshal() = %s", data)
	}

	var u user
	if err := New().Unmarshal(data, &u); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if u.Name != "alice" {
		t.Errorf("Name = %q, want %q", u.Name, "alice")
	}
}

func TestUnmarshalPlainDocument(t *testing.T) {
	var out any
	if err := New().Unmarshal([]byte(`<?xml version="1.0"?><doc>text</doc>`), &out); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if out != "text" {
		t.Errorf("Unmarshal() = %#v, want %q", out, "text")
	}
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"bad number", `<root type="number">abc</root>`},
		{"unterminated", `<root type="object"><a>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out any
			if err := New().Unmarshal([]byte(tt.data), &out); err == nil {
				t.Error("Unmarshal() should fail")
			}
		})
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"name", true},
		{"_private", true},
		{"a-b.c1", true},
		{"", false},
		{"1st", false},
		{"a b", false},
		{"XMLthing", false},
		{"ns:tag", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := validName(tt.name); got != tt.want {
				t.Errorf("validName(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
