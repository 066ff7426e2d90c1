package harness

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/jcheck/internal/journal"
)

//go:embed suite.cue
var suiteSchema string

// Suite error codes.
const (
	ErrCodeSuiteRead    = "SUITE_READ"
	ErrCodeSuiteParse   = "SUITE_PARSE"
	ErrCodeSuiteSchema  = "SUITE_SCHEMA"
	ErrCodeSuiteInvalid = "SUITE_INVALID"
)

// SuiteError reports a suite that could not be loaded.
type SuiteError struct {
	Code    string
	Path    string
	Message string
}

func (e *SuiteError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsSuiteError reports whether err is a *SuiteError.
func IsSuiteError(err error) bool {
	var se *SuiteError
	return errors.As(err, &se)
}

// Suite is a named list of scenarios loaded from YAML.
type Suite struct {
	Name        string
	Description string
	Scenarios   []Scenario
}

// suiteFile is the YAML document layout.
type suiteFile struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Scenarios   []scenarioSpec `yaml:"scenarios"`
}

// scenarioSpec is one YAML scenario. Pointer fields distinguish "absent"
// (use the envelope default) from an explicit empty value.
type scenarioSpec struct {
	Name          string  `yaml:"name"`
	Description   string  `yaml:"description"`
	ID            int64   `yaml:"id"`
	Severity      string  `yaml:"severity"`
	Augment       *bool   `yaml:"augment"`
	Text          string  `yaml:"text"`
	TestSeverity  bool    `yaml:"test_severity"`
	Substring     string  `yaml:"substring"`
	RecordingID   *string `yaml:"recording_id"`
	Username      *string `yaml:"username"`
	Session       *int64  `yaml:"session"`
	ExpectFailure bool    `yaml:"expect_failure"`
	ExpectKind    string  `yaml:"expect_kind"`
}

// LoadSuite reads a YAML suite file.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &SuiteError{Code: ErrCodeSuiteRead, Path: path, Message: err.Error()}
	}
	suite, err := ParseSuite(data)
	if err != nil {
		var se *SuiteError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}
	return suite, nil
}

// ParseSuite decodes and validates a YAML suite.
//
// Unknown fields are rejected. The document must satisfy the embedded
// #Suite schema, and correlation ids and names must be unique.
func ParseSuite(data []byte) (*Suite, error) {
	var file suiteFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, &SuiteError{Code: ErrCodeSuiteParse, Message: err.Error()}
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &SuiteError{Code: ErrCodeSuiteParse, Message: err.Error()}
	}
	if err := checkSchema(raw); err != nil {
		return nil, err
	}

	scenarios, err := buildSuite(file.Scenarios)
	if err != nil {
		return nil, err
	}

	return &Suite{
		Name:        file.Name,
		Description: file.Description,
		Scenarios:   scenarios,
	}, nil
}

// checkSchema unifies the decoded document with #Suite.
func checkSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(suiteSchema, cue.Filename("suite.cue"))
	if err := schema.Err(); err != nil {
		return &SuiteError{Code: ErrCodeSuiteSchema, Message: fmt.Sprintf("compiling schema: %v", err)}
	}

	v := schema.LookupPath(cue.ParsePath("#Suite")).Unify(ctx.Encode(doc))
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return &SuiteError{Code: ErrCodeSuiteSchema, Message: firstCUEError(err)}
	}
	return nil
}

// firstCUEError keeps the first of possibly many CUE errors.
func firstCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	msg := errs[0].Error()
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return msg
}

func buildSuite(specs []scenarioSpec) ([]Scenario, error) {
	ids := make(map[int64]string, len(specs))
	names := make(map[string]bool, len(specs))
	scenarios := make([]Scenario, 0, len(specs))

	for i, spec := range specs {
		if prev, dup := ids[spec.ID]; dup {
			return nil, &SuiteError{
				Code:    ErrCodeSuiteInvalid,
				Message: fmt.Sprintf("scenarios[%d]: id %d already used by %q", i, spec.ID, prev),
			}
		}
		if names[spec.Name] {
			return nil, &SuiteError{
				Code:    ErrCodeSuiteInvalid,
				Message: fmt.Sprintf("scenarios[%d]: duplicate name %q", i, spec.Name),
			}
		}
		ids[spec.ID] = spec.Name
		names[spec.Name] = true

		sc, err := spec.scenario()
		if err != nil {
			return nil, &SuiteError{
				Code:    ErrCodeSuiteInvalid,
				Message: fmt.Sprintf("scenarios[%d]: %v", i, err),
			}
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

func (s scenarioSpec) scenario() (Scenario, error) {
	severity := journal.SeverityInfo
	if s.Severity != "" {
		var err error
		if severity, err = journal.ParseSeverity(s.Severity); err != nil {
			return Scenario{}, err
		}
	}

	augment := true
	if s.Augment != nil {
		augment = *s.Augment
	}

	opts := []BuildOption{WithDescription(s.Description)}
	if s.Substring != "" {
		opts = append(opts, WithSubstring(s.Substring))
	}
	switch {
	case s.ExpectKind != "":
		opts = append(opts, ExpectFailureKind(ErrorKind(s.ExpectKind)))
	case s.ExpectFailure:
		opts = append(opts, ExpectFailure())
	}

	sc := Build(s.Name, s.ID, severity, augment, s.Text, s.TestSeverity, opts...)

	if s.RecordingID != nil {
		sc.Identity.RecordingID = s.RecordingID
	}
	if s.Username != nil {
		sc.Identity.Username = s.Username
	}
	if s.Session != nil {
		sc.Identity.SessionID = uint32(*s.Session)
	}
	return sc, nil
}
