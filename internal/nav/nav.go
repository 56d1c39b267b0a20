// Package nav computes the role-scoped menu from the embedded catalog.
package nav

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Kotresh021/frontendLMS/internal/domain"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry is one menu item in the global catalog.
type Entry struct {
	Key   string   `yaml:"key"`
	Label string   `yaml:"label"`
	Icon  string   `yaml:"icon"`
	Href  string   `yaml:"href"`
	Roles []string `yaml:"roles"`
}

// PermitsRole reports whether the entry's declared role set includes role.
func (e *Entry) PermitsRole(role domain.Role) bool {
	for _, r := range e.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// Catalog is the fixed global menu plus the student override list.
type Catalog struct {
	Entries      []Entry  `yaml:"entries"`
	StudentAllow []string `yaml:"student_allow"`
}

// Load parses the embedded catalog. The catalog is validated once at startup;
// a malformed catalog is a programming error, not a runtime condition.
func Load() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parse menu catalog: %w", err)
	}
	if len(c.Entries) == 0 {
		return nil, fmt.Errorf("menu catalog has no entries")
	}
	keys := make(map[string]bool, len(c.Entries))
	for i := range c.Entries {
		e := &c.Entries[i]
		if e.Key == "" || e.Label == "" || e.Href == "" {
			return nil, fmt.Errorf("menu entry %d missing key, label, or href", i)
		}
		if keys[e.Key] {
			return nil, fmt.Errorf("duplicate menu key %q", e.Key)
		}
		keys[e.Key] = true
		for _, r := range e.Roles {
			if !domain.Role(r).Valid() {
				return nil, fmt.Errorf("menu entry %q names unknown role %q", e.Key, r)
			}
		}
	}
	for _, k := range c.StudentAllow {
		if !keys[k] {
			return nil, fmt.Errorf("student allow-list names unknown entry %q", k)
		}
	}
	return &c, nil
}

// VisibleTo returns the ordered subset of entries the role may see, in
// catalog declaration order. The student role uses the fixed allow-list
// override instead of the generic per-entry role sets — a deliberate policy,
// kept as a distinct mechanism.
func (c *Catalog) VisibleTo(role domain.Role) []Entry {
	if role == domain.RoleStudent {
		allowed := make(map[string]bool, len(c.StudentAllow))
		for _, k := range c.StudentAllow {
			allowed[k] = true
		}
		out := make([]Entry, 0, len(c.StudentAllow))
		for _, e := range c.Entries {
			if allowed[e.Key] {
				out = append(out, e)
			}
		}
		return out
	}

	out := make([]Entry, 0, len(c.Entries))
	for _, e := range c.Entries {
		if e.PermitsRole(role) {
			out = append(out, e)
		}
	}
	return out
}

// EntryByKey looks up a catalog entry by key.
func (c *Catalog) EntryByKey(key string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}
