package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateScenarioBytes_Valid(t *testing.T) {
	err := ValidateScenarioBytes([]byte(`
name: ok
description: schema accepts a well-formed scenario
steps:
  - op: signup
    args: {username: nyx, password: pw}
  - op: logout
    expect_error: NOT_AUTHENTICATED
assertions:
  - type: session
golden: true
`))
	require.NoError(t, err)
}

func TestValidateScenarioBytes_UnknownAssertionType(t *testing.T) {
	err := ValidateScenarioBytes([]byte(`
name: bad
description: assertion type outside the enum
steps:
  - op: logout
assertions:
  - type: telepathy
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestValidateScenarioBytes_UnknownErrorCode(t *testing.T) {
	err := ValidateScenarioBytes([]byte(`
name: bad
description: expect_error outside the enum
steps:
  - op: login
    expect_error: WRONG_PASSWORD
assertions:
  - type: session
`))
	require.Error(t, err)
}

func TestValidateScenarioBytes_UnknownCollection(t *testing.T) {
	err := ValidateScenarioBytes([]byte(`
name: bad
description: count against a collection that does not exist
steps:
  - op: logout
assertions:
  - type: count
    collection: ghosts
    count: 3
`))
	require.Error(t, err)
}

func TestValidateScenarioBytes_MalformedYAML(t *testing.T) {
	err := ValidateScenarioBytes([]byte("steps: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}
