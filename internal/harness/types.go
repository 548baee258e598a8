package harness

// StepOutcome records how one scenario step went.
type StepOutcome struct {
	// Op is the operation name from the scenario.
	Op string `json:"op"`

	// Error is the precondition-failure code the step returned, or ""
	// when the step succeeded.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: every step matched its
	// expect_error clause and every assertion held.
	Pass bool `json:"pass"`

	// Steps records each executed step and its outcome, in order.
	Steps []StepOutcome `json:"steps"`

	// Errors contains validation error messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Steps:  []StepOutcome{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
