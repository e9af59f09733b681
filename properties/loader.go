package properties

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"pctl/logic"
)

// Load reads a .props file: one property per line, '//' comments, blank
// lines ignored. A line may name its property with a leading quoted name and
// a colon, e.g.
//
//	"safety": P<0.4 [F "bad"]
//
// Parse failures are reported with the file path and line number.
func Load(fs billy.Filesystem, path string) (*Registry, error) {
	blob, err := util.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	r := NewRegistry()

	for i, raw := range strings.Split(string(blob), "\n") {
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}

		name, rest, err := splitName(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}

		formulas, err := logic.ParseFormulas(rest)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
		}

		if name != "" && len(formulas) > 1 {
			return nil, fmt.Errorf("%s:%d: a named line must contain exactly one property", path, i+1)
		}

		for _, f := range formulas {
			if _, err := r.Add(name, f); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, i+1, err)
			}
		}
	}

	return r, nil
}

// Save writes the registry back in canonical form, one property per line.
func Save(fs billy.Filesystem, path string, r *Registry) error {
	var b strings.Builder

	for _, p := range r.All() {
		if p.Name != "" {
			b.WriteString(`"` + p.Name + `": `)
		}
		b.WriteString(p.Formula.String())
		b.WriteString("\n")
	}

	return util.WriteFile(fs, path, []byte(b.String()), 0666)
}

// stripComment drops everything from the first '//' that is not inside a
// quoted label.
func stripComment(line string) string {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuote = !inQuote
		case '/':
			if !inQuote && i+1 < len(line) && line[i+1] == '/' {
				return line[:i]
			}
		}
	}

	return line
}

// splitName peels off a leading `"name":` prefix. A property line can only
// start with 'P' or 'R', so a leading quote always introduces a name.
func splitName(line string) (name string, rest string, err error) {
	if !strings.HasPrefix(line, `"`) {
		return "", line, nil
	}

	end := strings.Index(line[1:], `"`)
	if end < 0 {
		return "", "", fmt.Errorf("unterminated property name")
	}

	name = line[1 : end+1]
	rest = strings.TrimSpace(line[end+2:])

	if !strings.HasPrefix(rest, ":") {
		return "", "", fmt.Errorf("expected ':' after property name '%s'", name)
	}

	rest = strings.TrimSpace(rest[1:])
	if rest == "" {
		return "", "", fmt.Errorf("property name '%s' has no formula", name)
	}

	return name, rest, nil
}
