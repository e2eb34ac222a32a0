// Package menu loads the navigation menu definition.
package menu

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"

	"github.com/SscSPs/cherry_dining/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed menu.yaml
var defaultMenu []byte

// Load parses the embedded menu definition.
func Load() (domain.Menu, error) {
	return Parse(defaultMenu)
}

// Parse decodes and validates a menu definition. Unknown fields, unknown roles,
// duplicate targets and empty labels are rejected.
func Parse(data []byte) (domain.Menu, error) {
	var menu domain.Menu
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&menu); err != nil && !errors.Is(err, io.EOF) {
		return domain.Menu{}, fmt.Errorf("failed to parse menu: %w", err)
	}
	if err := validate(menu); err != nil {
		return domain.Menu{}, err
	}
	return menu, nil
}

func validate(menu domain.Menu) error {
	if len(menu.Groups) == 0 {
		return errors.New("menu has no groups")
	}
	targets := make(map[string]string)
	for _, group := range menu.Groups {
		if group.Title == "" {
			return errors.New("menu group without a title")
		}
		for _, entry := range group.Entries {
			if entry.Label == "" || entry.Target == "" {
				return fmt.Errorf("group %q: entry needs both label and target", group.Title)
			}
			if prev, ok := targets[entry.Target]; ok {
				return fmt.Errorf("target %s is used by both %q and %q", entry.Target, prev, entry.Label)
			}
			targets[entry.Target] = entry.Label
			for _, role := range entry.Roles {
				if !role.IsValid() {
					return fmt.Errorf("entry %q: unknown role %q", entry.Label, role)
				}
			}
		}
	}
	return nil
}
