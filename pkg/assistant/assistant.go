// Package assistant orchestrates one conversational turn: analysis call,
// memory merge, todo reconciliation, portrait regeneration and atomic
// persistence. Turns are processed strictly one at a time; the profile is
// loaded at turn start and either persisted whole or discarded.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tracelog/tracelog/pkg/journal"
	"github.com/tracelog/tracelog/pkg/llm/tokenizer"
	"github.com/tracelog/tracelog/pkg/logging"
	"github.com/tracelog/tracelog/pkg/router"
)

// Assistant processes diary entries against the persistent profile.
type Assistant struct {
	router *router.Router
	store  journal.Store
	log    *logging.Logger

	// tokenizer may be nil; token accounting then falls back to an
	// approximation.
	tokenizer *tokenizer.Tokenizer

	// now is injectable for tests.
	now func() time.Time
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithTokenizer enables exact token accounting for the context digest.
func WithTokenizer(tok *tokenizer.Tokenizer) Option {
	return func(a *Assistant) {
		a.tokenizer = tok
	}
}

// New creates an assistant over the given collaborators.
func New(r *router.Router, store journal.Store, log *logging.Logger, opts ...Option) *Assistant {
	a := &Assistant{
		router: r,
		store:  store,
		log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// TurnResult is the user-visible outcome of one processed entry.
type TurnResult struct {
	// Reply is the conversational response to show the user.
	Reply string

	// EntryCount is the profile's entry counter after the merge.
	EntryCount int

	// DroppedDeletes lists todo ids the model asked to delete that do not
	// exist in storage. They were ignored, not applied.
	DroppedDeletes []string

	// SkippedCategories lists extraction categories whose payload had the
	// wrong shape and was treated as absent.
	SkippedCategories []string
}

// ProcessEntry runs one full turn. On any failure before Save the persisted
// state is untouched; a Save failure loses this turn's in-memory update but
// never corrupts the previously persisted documents.
func (a *Assistant) ProcessEntry(ctx context.Context, entry string) (*TurnResult, error) {
	p, err := a.store.Load()
	if err != nil {
		return nil, fmt.Errorf("assistant: load profile: %w", err)
	}

	digest := journal.BuildContextSummary(p)
	a.log.Debugf("context digest: %d tokens", a.countTokens(digest))

	resp, err := a.router.Analyze(ctx, entry, digest, p.Todos)
	if err != nil {
		var invalid *router.InvalidResponseError
		if errors.As(err, &invalid) {
			a.log.Errorf("invalid model response: %v\nraw response:\n%s", invalid.Err, invalid.Raw)
		} else {
			a.log.Errorf("analysis call failed: %v", err)
		}
		return nil, err
	}

	now := a.now()
	ex := resp.Extracted

	journal.Merge(p, ex, now)

	var dropped []string
	p.Todos, dropped = journal.Reconcile(p.Todos, ex.TodoUpserts, ex.TodoDeletes, now)
	for _, id := range dropped {
		a.log.Warnf("delete request for unknown todo id %q ignored", id)
	}
	for _, cat := range ex.Skipped {
		a.log.Warnf("extraction category %q had the wrong shape and was skipped", cat)
	}

	// The portrait is regenerated from the already-merged profile; if the
	// call fails the prior portrait stays as is and the turn continues.
	if portrait, err := a.router.RegeneratePortrait(ctx, p); err != nil {
		a.log.Warnf("portrait regeneration failed, keeping prior portrait: %v", err)
	} else {
		p.Portrait = portrait
	}

	if err := a.store.Save(p); err != nil {
		a.log.Errorf("persist profile: %v", err)
		return nil, fmt.Errorf("assistant: persist profile: %w", err)
	}

	a.log.Infof("entry %d merged: %d todos, %d diary summaries",
		p.Meta.EntryCount, len(p.Todos), len(p.DiarySummaries))

	return &TurnResult{
		Reply:             resp.Reply,
		EntryCount:        p.Meta.EntryCount,
		DroppedDeletes:    dropped,
		SkippedCategories: ex.Skipped,
	}, nil
}

// Flush re-persists the current profile and logs the final context digest.
// Called on shutdown so the last session state is durably on disk even if a
// previous save was interrupted.
func (a *Assistant) Flush() error {
	p, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("assistant: load profile: %w", err)
	}
	digest := journal.BuildContextSummary(p)
	a.log.Infof("session end: %d entries, final digest %d tokens",
		p.Meta.EntryCount, a.countTokens(digest))
	if err := a.store.Save(p); err != nil {
		return fmt.Errorf("assistant: persist profile: %w", err)
	}
	return nil
}

func (a *Assistant) countTokens(text string) int {
	if a.tokenizer != nil {
		return a.tokenizer.CountTokens(text)
	}
	return tokenizer.Approximate(text)
}
