package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios execute a sequence of operations against a fresh store and
// assert on the resulting state.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps contains the operations to execute, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state after all steps ran.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// Golden enables comparison of the final state snapshot against
	// testdata/golden/{Name}.golden.
	Golden bool `yaml:"golden,omitempty"`
}

// Step is a single operation invocation.
type Step struct {
	// Op is the operation name (e.g. "signup", "add_post", "set_theme").
	Op string `yaml:"op"`

	// Args contains the operation arguments. Entities are referenced by
	// natural handles (usernames, post titles, message texts), never ids.
	Args map[string]any `yaml:"args,omitempty"`

	// ExpectError is the precondition-failure code this step must return
	// (e.g. "FORBIDDEN", "USERNAME_TAKEN"). Empty means the step must
	// succeed.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// Assertion validates one aspect of the final state.
type Assertion struct {
	// Type specifies the assertion type:
	// - "count": Collection holds exactly Count entries
	// - "role": User holds Role
	// - "friends": User's friend list is exactly Users (by username)
	// - "requests": User's pending requests are exactly Users
	// - "reactions": Post's likes/dislikes are exactly Likes/Dislikes
	// - "theme": active theme equals Theme
	// - "session": session subject is User ("" asserts logged out)
	Type string `yaml:"type"`

	// Collection names a collection (used by count):
	// users, posts, comments, globalMessages, messages, scriptures,
	// calendarEvents.
	Collection string `yaml:"collection,omitempty"`

	// Count is the expected entry count (used by count).
	Count int `yaml:"count,omitempty"`

	// User is a username (used by role, friends, requests, session).
	User string `yaml:"user,omitempty"`

	// Role is the expected role (used by role).
	Role string `yaml:"role,omitempty"`

	// Users are expected usernames in order (used by friends, requests).
	Users []string `yaml:"users,omitempty"`

	// Post is a post title (used by reactions).
	Post string `yaml:"post,omitempty"`

	// Likes and Dislikes are expected reacting usernames in order
	// (used by reactions).
	Likes    []string `yaml:"likes,omitempty"`
	Dislikes []string `yaml:"dislikes,omitempty"`

	// Theme is the expected theme (used by theme).
	Theme string `yaml:"theme,omitempty"`
}

// Assertion type constants.
const (
	AssertCount     = "count"
	AssertRole      = "role"
	AssertFriends   = "friends"
	AssertRequests  = "requests"
	AssertReactions = "reactions"
	AssertTheme     = "theme"
	AssertSession   = "session"
)

// LoadScenario reads, parses, and validates a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), fails schema validation, or is missing
// required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Schema validation first - it produces better messages for shape
	// errors than the strict YAML decode below.
	if err := ValidateScenarioBytes(data); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like
	// "assertion:" vs "assertions:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Op == "" {
			return fmt.Errorf("steps[%d]: op is required", i)
		}
	}

	if len(s.Assertions) == 0 && !s.Golden {
		return fmt.Errorf("scenario needs assertions, golden, or both")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertCount:
		if a.Collection == "" {
			return fmt.Errorf("assertions[%d]: collection is required for count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertRole:
		if a.User == "" || a.Role == "" {
			return fmt.Errorf("assertions[%d]: user and role are required for role", index)
		}
	case AssertFriends, AssertRequests:
		if a.User == "" {
			return fmt.Errorf("assertions[%d]: user is required for %s", index, a.Type)
		}
	case AssertReactions:
		if a.Post == "" {
			return fmt.Errorf("assertions[%d]: post is required for reactions", index)
		}
	case AssertTheme:
		if a.Theme == "" {
			return fmt.Errorf("assertions[%d]: theme is required for theme", index)
		}
	case AssertSession:
		// User may be empty: that asserts no active session.
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
