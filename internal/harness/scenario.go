package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one declarative conformance script.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	// Self is the active identity every step runs as.
	Self string `yaml:"self"`

	// Now pins the clock, unix seconds. Published records are stamped
	// with it and expiry checks evaluate against it.
	Now int64 `yaml:"now"`

	Records []SeedRecord `yaml:"records,omitempty"`
	Steps   []Step       `yaml:"steps"`
}

// SeedRecord is one pre-seeded relay record. It is signed with the
// deterministic test signer at run time, so its ID is a genuine content
// address.
type SeedRecord struct {
	// Ref names the record so later steps can target it.
	Ref string `yaml:"ref,omitempty"`

	Author    string     `yaml:"author"`
	CreatedAt int64      `yaml:"created_at"`
	Kind      int        `yaml:"kind"`
	Tags      [][]string `yaml:"tags,omitempty"`
	Content   string     `yaml:"content,omitempty"`
}

// Step is one scripted action: exactly one of View or Op.
type Step struct {
	View string `yaml:"view,omitempty"`
	Op   string `yaml:"op,omitempty"`

	Group   string `yaml:"group,omitempty"`   // group coordinate
	Event   string `yaml:"event,omitempty"`   // event coordinate
	Subject string `yaml:"subject,omitempty"` // join subject
	Status  string `yaml:"status,omitempty"`  // rsvp status
	Nonce   string `yaml:"nonce,omitempty"`   // check-in code
	Target  string `yaml:"target,omitempty"`  // seed or step ref
	Reason  string `yaml:"reason,omitempty"`
	Content string `yaml:"content,omitempty"`

	// Ref names the published record for later steps. Ops only.
	Ref string `yaml:"ref,omitempty"`

	// ExpectError turns the step into a guard probe: it must fail with
	// an error containing this substring, and the error text becomes
	// the step's snapshot output.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// View names.
const (
	ViewRoster          = "roster"
	ViewPendingRequests = "pending_requests"
	ViewAttendance      = "attendance"
	ViewDiscussion      = "discussion"
	ViewListings        = "listings"
	ViewRSVPCandidates  = "rsvp_candidates"
)

// Op names.
const (
	OpRequestJoin  = "request_join"
	OpApproveJoin  = "approve_join"
	OpRejectJoin   = "reject_join"
	OpRSVP         = "rsvp"
	OpCheckIn      = "checkin"
	OpReply        = "reply"
	OpConvertReply = "convert_reply"
	OpHide         = "hide"
)

var knownViews = map[string]bool{
	ViewRoster:          true,
	ViewPendingRequests: true,
	ViewAttendance:      true,
	ViewDiscussion:      true,
	ViewListings:        true,
	ViewRSVPCandidates:  true,
}

var knownOps = map[string]bool{
	OpRequestJoin:  true,
	OpApproveJoin:  true,
	OpRejectJoin:   true,
	OpRSVP:         true,
	OpCheckIn:      true,
	OpReply:        true,
	OpConvertReply: true,
	OpHide:         true,
}

func (s Step) label() string {
	if s.View != "" {
		return s.View
	}
	return s.Op
}

// LoadScenario reads and validates a scenario YAML file. Unknown fields
// are rejected so a typo fails loudly instead of silently skipping a
// constraint.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Self == "" {
		return fmt.Errorf("self is required")
	}
	if s.Now <= 0 {
		return fmt.Errorf("now must be a positive unix time")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	refs := make(map[string]bool)
	for i, seed := range s.Records {
		if seed.Author == "" {
			return fmt.Errorf("records[%d]: author is required", i)
		}
		if seed.CreatedAt <= 0 {
			return fmt.Errorf("records[%d]: created_at must be positive", i)
		}
		if seed.Kind <= 0 {
			return fmt.Errorf("records[%d]: kind is required", i)
		}
		for j, tag := range seed.Tags {
			if len(tag) == 0 || tag[0] == "" {
				return fmt.Errorf("records[%d].tags[%d]: tag name is required", i, j)
			}
		}
		if seed.Ref != "" {
			if refs[seed.Ref] {
				return fmt.Errorf("records[%d]: duplicate ref %q", i, seed.Ref)
			}
			refs[seed.Ref] = true
		}
	}

	for i, step := range s.Steps {
		switch {
		case step.View != "" && step.Op != "":
			return fmt.Errorf("steps[%d]: view and op are mutually exclusive", i)
		case step.View == "" && step.Op == "":
			return fmt.Errorf("steps[%d]: one of view or op is required", i)
		case step.View != "" && !knownViews[step.View]:
			return fmt.Errorf("steps[%d]: unknown view %q", i, step.View)
		case step.Op != "" && !knownOps[step.Op]:
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Ref != "" && step.Op == "" {
			return fmt.Errorf("steps[%d]: ref is only valid on ops", i)
		}
		if step.Ref != "" {
			if refs[step.Ref] {
				return fmt.Errorf("steps[%d]: duplicate ref %q", i, step.Ref)
			}
			refs[step.Ref] = true
		}
	}
	return nil
}
