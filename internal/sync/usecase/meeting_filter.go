package usecase

import (
	"strings"

	apperrors "hubsync/internal/shared/errors"
	"hubsync/internal/sync/domain/model"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/checker/decls"
)

// MeetingFilter evaluates an account's optional CEL qualification rule
// against each meeting. A nil filter qualifies everything.
type MeetingFilter struct {
	program cel.Program
}

// createFilterEnvironment declares the variables visible to filter
// expressions.
func createFilterEnvironment() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Declarations(
			decls.NewVar("meetingId", decls.String),
			decls.NewVar("properties", decls.NewMapType(decls.String, decls.String)),
		),
	)
}

// CompileMeetingFilter compiles the account's filter expression once
// per sync run. An empty expression yields a nil filter (allow all). A
// compile error aborts the run with a validation error.
func CompileMeetingFilter(expression string) (*MeetingFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, nil
	}

	env, err := createFilterEnvironment()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to create filter environment").WithCause(err)
	}

	ast, issues := env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, apperrors.NewValidationError("invalid meeting filter rule").
			WithCause(issues.Err()).
			WithDetail("expression", expression)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid meeting filter rule").
			WithCause(err).
			WithDetail("expression", expression)
	}

	return &MeetingFilter{program: program}, nil
}

// Qualifies reports whether the meeting passes the filter rule.
func (f *MeetingFilter) Qualifies(meeting *model.Meeting) (bool, error) {
	if f == nil || f.program == nil {
		return true, nil
	}

	out, _, err := f.program.Eval(map[string]interface{}{
		"meetingId":  meeting.ID,
		"properties": meeting.Properties,
	})
	if err != nil {
		return false, apperrors.NewValidationError("meeting filter evaluation failed").WithCause(err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, apperrors.NewValidationError("meeting filter did not return a boolean")
	}
	return result, nil
}
