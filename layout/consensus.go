package layout

import (
	"errors"
	"fmt"

	"github.com/tsawler/worksheet/model"
	"github.com/tsawler/worksheet/spans"
)

// ErrConsensusAnomaly is matched by every AnomalyError.
var ErrConsensusAnomaly = errors.New("consensus anomaly")

// AnomalyError reports a page whose columns disagree with the consensus for
// its page kind.
type AnomalyError struct {
	Kind  model.Kind
	Page  int
	Have  spans.Set // Consensus before the merge
	Got   spans.Set // Candidate produced by the merge
	Shift int       // Largest boundary movement, set when MaxShift was exceeded
}

// Error implements the error interface.
func (e *AnomalyError) Error() string {
	if e.Have.Len() == e.Got.Len() {
		return fmt.Sprintf("%s page %d: column boundary moved %d columns (consensus %s, candidate %s)",
			e.Kind, e.Page, e.Shift, e.Have, e.Got)
	}
	return fmt.Sprintf("%s page %d: %d columns, consensus has %d (consensus %s, candidate %s)",
		e.Kind, e.Page, e.Got.Len(), e.Have.Len(), e.Have, e.Got)
}

// Unwrap returns ErrConsensusAnomaly.
func (e *AnomalyError) Unwrap() error {
	return ErrConsensusAnomaly
}

// Outcome is the result of a merge.
type Outcome struct {
	// Spans is the consensus after the merge.
	Spans spans.Set

	// Ignored holds the anomaly when the Ignore policy swallowed it.
	Ignored *AnomalyError
}

// Consensus accumulates page evidence for one page kind. The zero value is
// not usable; create one with NewConsensus.
type Consensus struct {
	kind     model.Kind
	policy   Policy
	maxShift int

	set    spans.Set
	seeded bool
	pages  int
}

// NewConsensus creates an empty consensus for kind.
func NewConsensus(kind model.Kind, policy Policy, maxShift int) *Consensus {
	return &Consensus{
		kind:     kind,
		policy:   policy,
		maxShift: maxShift,
	}
}

// Kind returns the page kind this consensus tracks.
func (c *Consensus) Kind() model.Kind {
	return c.kind
}

// Spans returns the current consensus.
func (c *Consensus) Spans() spans.Set {
	return c.set
}

// Seeded reports whether at least one page has been merged.
func (c *Consensus) Seeded() bool {
	return c.seeded
}

// Pages returns the number of pages whose evidence was accepted.
func (c *Consensus) Pages() int {
	return c.pages
}

// Merge folds the evidence of one page into the consensus. The first merge
// seeds it. Later merges are accepted when the union with the current
// consensus keeps the same number of columns.
func (c *Consensus) Merge(page int, evidence spans.Set) (Outcome, error) {
	if !c.seeded {
		c.set = evidence
		c.seeded = true
		c.pages++
		return Outcome{Spans: c.set}, nil
	}

	candidate := c.set.Union(evidence)
	anomaly := c.check(page, candidate)
	if anomaly == nil {
		c.set = candidate
		c.pages++
		return Outcome{Spans: c.set}, nil
	}

	if c.policy == Ignore {
		return Outcome{Spans: c.set, Ignored: anomaly}, nil
	}
	return Outcome{Spans: c.set}, anomaly
}

// check returns an anomaly if candidate cannot replace the consensus.
func (c *Consensus) check(page int, candidate spans.Set) *AnomalyError {
	if candidate.Len() != c.set.Len() {
		return &AnomalyError{Kind: c.kind, Page: page, Have: c.set, Got: candidate}
	}
	if c.maxShift <= 0 {
		return nil
	}

	shift := 0
	for i := 0; i < candidate.Len(); i++ {
		have, got := c.set.At(i), candidate.At(i)
		shift = max(shift, abs(have.Start-got.Start), abs(have.End-got.End))
	}
	if shift > c.maxShift {
		return &AnomalyError{Kind: c.kind, Page: page, Have: c.set, Got: candidate, Shift: shift}
	}
	return nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Session holds the consensus of every page kind for one document.
type Session struct {
	config     Config
	program    *Consensus
	department *Consensus
}

// NewSession creates a session with empty consensus for both page kinds.
func NewSession(config Config) *Session {
	return &Session{
		config:     config.clone(),
		program:    NewConsensus(model.ProgramPage, config.Policy, config.MaxShift),
		department: NewConsensus(model.DepartmentPage, config.Policy, config.MaxShift),
	}
}

// Config returns the configuration the session was created with.
func (s *Session) Config() Config {
	return s.config
}

// Consensus returns the consensus tracked for kind.
func (s *Session) Consensus(kind model.Kind) *Consensus {
	if kind == model.DepartmentPage {
		return s.department
	}
	return s.program
}

// Merge folds page evidence into the consensus for kind.
func (s *Session) Merge(kind model.Kind, page int, evidence spans.Set) (Outcome, error) {
	return s.Consensus(kind).Merge(page, evidence)
}
