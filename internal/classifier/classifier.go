// Package classifier flags items belonging to categories of product
// prone to return fraud.
package classifier

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"

	"github.com/opensource-retail/kestrel/internal/domain"
)

// Classifier decides whether an item is highly abused. The built-in
// rules cover collectibles, baby food, and limited-time promotional
// items; operators can extend them with CEL expressions over the
// lowercased item name and category.
type Classifier struct {
	env      *cel.Env
	programs []cel.Program
}

// New creates a classifier. Each extra rule is a CEL expression with
// variables `name` and `category`; compilation failures are returned
// so bad rules are rejected at startup rather than at decision time.
func New(extraRules []string) (*Classifier, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),
		cel.Variable("category", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	c := &Classifier{env: env}
	for _, expr := range extraRules {
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("failed to compile abuse rule %q: %w", expr, issues.Err())
		}
		if ast.OutputType() != cel.BoolType {
			return nil, fmt.Errorf("abuse rule %q: expression must return bool, got %s", expr, ast.OutputType())
		}
		program, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("failed to create program for abuse rule %q: %w", expr, err)
		}
		c.programs = append(c.programs, program)
	}

	return c, nil
}

// RulesCount returns the number of loaded extra rules.
func (c *Classifier) RulesCount() int {
	return len(c.programs)
}

// HighlyAbused reports whether the item is statistically prone to
// return fraud. All checks are case-insensitive; missing name or
// category behave as empty strings.
func (c *Classifier) HighlyAbused(item domain.Item) bool {
	name := strings.ToLower(item.ItemName)
	category := strings.ToLower(item.Category)

	switch {
	case strings.Contains(name, "funko"):
		return true
	case category == "baby food":
		return true
	case category == "baby" && strings.Contains(name, "food"):
		return true
	case category == "limited time offer":
		return true
	case strings.Contains(name, "lto"):
		return true
	case strings.Contains(name, "limited time offer"):
		return true
	}

	activation := map[string]any{
		"name":     name,
		"category": category,
	}
	for _, program := range c.programs {
		out, _, err := program.Eval(activation)
		if err != nil {
			continue
		}
		if b, ok := out.(types.Bool); ok && bool(b) {
			return true
		}
	}

	return false
}
