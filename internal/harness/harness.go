package harness

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/roach88/hearth/internal/cache"
	"github.com/roach88/hearth/internal/reconcile"
	"github.com/roach88/hearth/internal/record"
	"github.com/roach88/hearth/internal/relay"
	"github.com/roach88/hearth/internal/signer/testsigner"
	"github.com/roach88/hearth/internal/validate"
	"github.com/roach88/hearth/internal/views"
)

/// Result is the snapshot of one scenario execution: every step's output
// in script order.
type Result struct {
	Scenario string       `json:"scenario"`
	Steps    []StepResult `json:"steps"`
}

// StepResult pairs a step's label with its snapshotted output.
type StepResult struct {
	Step   string `json:"step"`
	Output any    `json:"output"`
}

// Run executes a scenario against a fresh in-memory relay. Caching is
// disabled and the clock pinned, so identical scenarios produce
// identical results.
func Run(s *Scenario) (*Result, error) {
	ctx := context.Background()

	mem := relay.NewMemory("")
	refs := make(map[string]record.Record)
	for i, seed := range s.Records {
		r, err := signSeed(ctx, seed)
		if err != nil {
			return nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		// A seed the validators would drop on fetch is a scenario
		// authoring mistake, not a test of anything.
		if !validate.Record(r) {
			return nil, fmt.Errorf("records[%d]: kind %d record fails its validator", i, r.Kind)
		}
		mem.Seed(r)
		if seed.Ref != "" {
			refs[seed.Ref] = r
		}
	}

	pool := relay.NewPool([]relay.Relay{mem}, 0, nil)
	sgn := testsigner.New(s.Self, func() int64 { return s.Now })
	svc := views.NewService(pool, cache.New(0), sgn, nil).
		WithClock(func() time.Time { return time.Unix(s.Now, 0) })

	result := &Result{Scenario: s.Name, Steps: make([]StepResult, 0, len(s.Steps))}
	for i, step := range s.Steps {
		out, published, err := runStep(ctx, svc, refs, step)
		switch {
		case err != nil && step.ExpectError == "":
			return nil, fmt.Errorf("steps[%d] %s: %w", i, step.label(), err)
		case err != nil:
			if !strings.Contains(err.Error(), step.ExpectError) {
				return nil, fmt.Errorf("steps[%d] %s: got error %q, want one containing %q",
					i, step.label(), err, step.ExpectError)
			}
			out = errorOut{Error: err.Error()}
		case step.ExpectError != "":
			return nil, fmt.Errorf("steps[%d] %s: succeeded, want error containing %q",
				i, step.label(), step.ExpectError)
		default:
			if step.Ref != "" {
				refs[step.Ref] = published
			}
		}
		result.Steps = append(result.Steps, StepResult{Step: step.label(), Output: out})
	}
	return result, nil
}

func signSeed(ctx context.Context, seed SeedRecord) (record.Record, error) {
	tags := make(record.Tags, 0, len(seed.Tags))
	for _, raw := range seed.Tags {
		tags = append(tags, record.NewTag(raw[0], raw[1:]...))
	}
	return testsigner.New(seed.Author, nil).Sign(ctx, record.Draft{
		Kind:      seed.Kind,
		CreatedAt: seed.CreatedAt,
		Tags:      tags,
		Content:   seed.Content,
	})
}

func runStep(ctx context.Context, svc *views.Service, refs map[string]record.Record, step Step) (any, record.Record, error) {
	if step.View != "" {
		out, err := runView(ctx, svc, step)
		return out, record.Record{}, err
	}
	return runOp(ctx, svc, refs, step)
}

func runView(ctx context.Context, svc *views.Service, step Step) (any, error) {
	switch step.View {
	case ViewRoster:
		group, err := record.ParseCoordinate(step.Group)
		if err != nil {
			return nil, err
		}
		roster, err := svc.Group(ctx, group)
		if err != nil {
			return nil, err
		}
		if !roster.Found {
			return nil, views.ErrGroupNotFound
		}
		return rosterSnapshot(roster), nil

	case ViewPendingRequests:
		group, err := record.ParseCoordinate(step.Group)
		if err != nil {
			return nil, err
		}
		pending, err := svc.PendingJoinRequests(ctx, group)
		if err != nil {
			return nil, err
		}
		return requestsSnapshot(pending), nil

	case ViewAttendance:
		event, err := record.ParseCoordinate(step.Event)
		if err != nil {
			return nil, err
		}
		view, err := svc.EventAttendance(ctx, event)
		if err != nil {
			return nil, err
		}
		return attendanceSnapshot(view), nil

	case ViewDiscussion:
		event, err := record.ParseCoordinate(step.Event)
		if err != nil {
			return nil, err
		}
		thread, err := svc.EventDiscussion(ctx, event)
		if err != nil {
			return nil, err
		}
		return threadSnapshot(thread), nil

	case ViewListings:
		group, err := record.ParseCoordinate(step.Group)
		if err != nil {
			return nil, err
		}
		listings, err := svc.GroupServices(ctx, group, reconcile.ListingFilters{})
		if err != nil {
			return nil, err
		}
		return listingsSnapshot(listings), nil

	case ViewRSVPCandidates:
		event, err := record.ParseCoordinate(step.Event)
		if err != nil {
			return nil, err
		}
		suggestions, err := svc.RSVPCandidates(ctx, event)
		if err != nil {
			return nil, err
		}
		return suggestionsSnapshot(suggestions), nil
	}
	return nil, fmt.Errorf("unknown view %q", step.View)
}

func runOp(ctx context.Context, svc *views.Service, refs map[string]record.Record, step Step) (any, record.Record, error) {
	var published record.Record
	var err error

	switch step.Op {
	case OpRequestJoin:
		var group record.Coordinate
		if group, err = record.ParseCoordinate(step.Group); err == nil {
			published, err = svc.RequestJoin(ctx, group, step.Content)
		}
	case OpApproveJoin:
		var group record.Coordinate
		if group, err = record.ParseCoordinate(step.Group); err == nil {
			published, err = svc.ApproveJoinRequest(ctx, group, step.Subject)
		}
	case OpRejectJoin:
		var group record.Coordinate
		if group, err = record.ParseCoordinate(step.Group); err == nil {
			published, err = svc.RejectJoinRequest(ctx, group, step.Subject, step.Reason)
		}
	case OpRSVP:
		var event record.Coordinate
		if event, err = record.ParseCoordinate(step.Event); err == nil {
			published, err = svc.RSVP(ctx, event, step.Status)
		}
	case OpCheckIn:
		var event record.Coordinate
		if event, err = record.ParseCoordinate(step.Event); err == nil {
			published, err = svc.CheckIn(ctx, event, step.Nonce)
		}
	case OpReply:
		var event record.Coordinate
		if event, err = record.ParseCoordinate(step.Event); err == nil {
			parentID := ""
			if step.Target != "" {
				var parent record.Record
				if parent, err = resolveRef(refs, step.Target); err != nil {
					return nil, record.Record{}, err
				}
				parentID = parent.ID
			}
			published, err = svc.PostReply(ctx, event, parentID, step.Content)
		}
	case OpConvertReply:
		var event record.Coordinate
		if event, err = record.ParseCoordinate(step.Event); err == nil {
			var target record.Record
			if target, err = resolveRef(refs, step.Target); err != nil {
				return nil, record.Record{}, err
			}
			published, err = svc.ConvertReplyToRSVP(ctx, event, target.ID)
		}
	case OpHide:
		var group record.Coordinate
		if group, err = record.ParseCoordinate(step.Group); err == nil {
			var target record.Record
			if target, err = resolveRef(refs, step.Target); err != nil {
				return nil, record.Record{}, err
			}
			published, err = svc.HideRecord(ctx, group, target.ID, target.Author, step.Reason)
		}
	default:
		err = fmt.Errorf("unknown op %q", step.Op)
	}

	if err != nil {
		return nil, record.Record{}, err
	}
	return publishOut{Kind: published.Kind}, published, nil
}

func resolveRef(refs map[string]record.Record, name string) (record.Record, error) {
	r, ok := refs[name]
	if !ok {
		return record.Record{}, fmt.Errorf("unknown record ref %q", name)
	}
	return r, nil
}
