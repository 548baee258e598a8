package harness

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

// scenarioSchema constrains scenario files beyond what Go struct
// decoding checks: enum values for assertion types and error codes,
// non-empty required strings, argument shapes.
const scenarioSchema = `
#Scenario: {
	name:        string & !=""
	description: string & !=""
	steps: [#Step, ...#Step]
	assertions?: [...#Assertion]
	golden?: bool
}

#Step: {
	op: string & !=""
	args?: {...}
	expect_error?: "NOT_AUTHENTICATED" | "FORBIDDEN" | "NOT_FOUND" |
		"USERNAME_TAKEN" | "BAD_CREDENTIALS" | "SELF_TARGET" |
		"DUPLICATE" | "INVALID_INPUT"
}

#Assertion: {
	type: "count" | "role" | "friends" | "requests" | "reactions" |
		"theme" | "session"
	collection?: "users" | "posts" | "comments" | "globalMessages" |
		"messages" | "scriptures" | "calendarEvents"
	count?: int & >=0
	user?:  string
	role?:  "user" | "moderator" | "co-owner" | "owner"
	users?: [...string]
	post?: string
	likes?: [...string]
	dislikes?: [...string]
	theme?: string
}
`

// ValidateScenarioBytes checks raw scenario YAML against the embedded
// CUE schema. Returns nil if the document conforms.
func ValidateScenarioBytes(data []byte) error {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse YAML: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(scenarioSchema)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	def := schema.LookupPath(cue.ParsePath("#Scenario"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup schema definition: %w", err)
	}

	unified := def.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema violation: %s", cueerrors.Details(err, nil))
	}

	return nil
}
