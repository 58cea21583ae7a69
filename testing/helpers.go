// Package testing provides fixtures and assertions for replacer tests.
package testing

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/zoobzio/replacer"
	"github.com/zoobzio/replacer/bson"
	"github.com/zoobzio/replacer/json"
	"github.com/zoobzio/replacer/msgpack"
	"github.com/zoobzio/replacer/xml"
	"github.com/zoobzio/replacer/yaml"
)

// ErrBoom is returned by Account.Fail.
var ErrBoom = errors.New("boom")

// Profile is a nested fixture.
type Profile struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Account is a fixture exercising every property category and every
// method outcome.
type Account struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Internal string   `json:"-"`
	Nickname string   `json:"nickname,omitempty"`
	Profile  *Profile `json:"profile"`
	Tags     []string `json:"tags"`

	secret string
}

// NewAccount returns a fully populated Account.
func NewAccount() *Account {
	return &Account{
		ID:       "42",
		Email:    "alice@example.com",
		Password: "hunter2",
		Internal: "internal",
		Profile:  &Profile{Name: "Alice Liddell", Password: "nested"},
		Tags:     []string{"admin", "beta"},
		secret:   "s3cr3t",
	}
}

// Initials returns the profile initials.
func (a Account) Initials() string {
	if a.Profile == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Fields(a.Profile.Name) {
		b.WriteString(part[:1])
	}
	return b.String()
}

// Answer always returns 42.
func (a Account) Answer() int { return 42 }

// Fail always returns ErrBoom.
func (a Account) Fail() (string, error) { return "", ErrBoom }

// Explode always panics.
func (a Account) Explode() string { panic("kaboom") }

// Touch has no results.
func (a *Account) Touch() {}

// Check returns a nil error.
func (a *Account) Check() error { return nil }

// Secret reads the unexported field through a pointer receiver.
func (a *Account) Secret() string { return a.secret }

// Node is a linked fixture used to build cycles.
type Node struct {
	Name string `json:"name"`
	Next *Node  `json:"next"`
}

// Ring returns n nodes linked into a cycle.
func Ring(n int) *Node {
	head := &Node{Name: "0"}
	cur := head
	for i := 1; i < n; i++ {
		cur.Next = &Node{Name: fmt.Sprint(i)}
		cur = cur.Next
	}
	cur.Next = head
	return head
}

// Codecs returns one instance of every codec, keyed by short name.
func Codecs() map[string]replacer.Codec {
	return map[string]replacer.Codec{
		"json":    json.New(),
		"yaml":    yaml.New(),
		"xml":     xml.New(),
		"msgpack": msgpack.New(),
		"bson":    bson.New(),
	}
}

// RegisterCodecs registers every codec with the replacer registry.
func RegisterCodecs() {
	for _, c := range Codecs() {
		replacer.Register(c)
	}
}

// KeysAt returns every map key found anywhere in a plain tree, sorted.
func KeysAt(tree any) []string {
	seen := make(map[string]bool)
	collectKeys(tree, seen)
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func collectKeys(tree any, seen map[string]bool) {
	switch t := tree.(type) {
	case map[string]any:
		for k, v := range t {
			seen[k] = true
			collectKeys(v, seen)
		}
	case []any:
		for _, v := range t {
			collectKeys(v, seen)
		}
	}
}

// AssertNoKey fails the test if key appears at any depth of tree.
func AssertNoKey(tb testing.TB, tree any, key string) {
	tb.Helper()
	for _, k := range KeysAt(tree) {
		if k == key {
			tb.Errorf("key %q present in %v", key, tree)
			return
		}
	}
}
