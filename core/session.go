package core

import (
	"context"
	"fmt"
	"time"

	"github.com/huangsam/repostats/core/agg"
	"github.com/huangsam/repostats/internal/contract"
	"github.com/huangsam/repostats/schema"
)

// Session is the explicit state for one analysis invocation: discovered
// repositories plus the merged commit collection. It is created, run and
// discarded within a single command; no process-wide analyzer state survives
// between runs.
type Session struct {
	cfg        *contract.Config
	client     contract.GitClient
	repos      []schema.RepositoryHandle
	collection *agg.Collection
	started    time.Time
	finished   time.Time
}

// NewSession creates a session for the given configuration.
func NewSession(cfg *contract.Config, client contract.GitClient) *Session {
	return &Session{
		cfg:        cfg,
		client:     client,
		collection: agg.NewCollection(),
	}
}

// Run discovers repositories and extracts their commit history into the
// session collection. Repositories are processed in sorted-path order and
// merged one Ingest call at a time, so hash dedup resolves deterministically
// (first seen wins). A repository whose git invocation fails contributes zero
// records after a warning; the run continues for the rest.
//
// Returns ErrNoRepositories when discovery matches nothing, which is distinct
// from finding repositories that have no commits in the window.
func (s *Session) Run(ctx context.Context) error {
	s.started = time.Now()

	s.repos = DiscoverRepositories(s.cfg.Patterns)
	if len(s.repos) == 0 {
		return ErrNoRepositories
	}

	for _, repo := range s.repos {
		records, err := ExtractRepository(ctx, s.cfg, s.client, repo)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping repository %s", repo.Path), err)
			continue
		}
		s.collection.Ingest(records)
	}

	s.finished = time.Now()
	return nil
}

// Collection returns the merged, deduplicated commit collection.
func (s *Session) Collection() *agg.Collection {
	return s.collection
}

// Repositories returns the discovered repository handles in sorted order.
func (s *Session) Repositories() []schema.RepositoryHandle {
	return s.repos
}

// Duration returns how long discovery plus extraction took.
func (s *Session) Duration() time.Duration {
	return s.finished.Sub(s.started)
}
