package cdc

import (
	"strings"

	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/logger"
	"github.com/endorses/cdcat/internal/pkg/towerdb"
	"github.com/google/uuid"
)

// Session is one parse run: it owns the correlation state and the external
// tower-lookup collaborator. There is no package-level mutable state; a new
// Session starts clean. Sessions are single-pass and not safe for
// concurrent use.
type Session struct {
	ID             uuid.UUID
	fallbackBucket string
	towers         towerdb.Lookup
}

// Option configures a Session.
type Option func(*Session)

// WithTowerLookup attaches the external tower-lookup collaborator. The
// lookup must not be mutated while a parse is in flight.
func WithTowerLookup(lookup towerdb.Lookup) Option {
	return func(s *Session) { s.towers = lookup }
}

// WithFallbackBucket overrides the bucket name for keyless records.
func WithFallbackBucket(name string) Option {
	return func(s *Session) { s.fallbackBucket = name }
}

// NewSession creates a parse session with a fresh identity.
func NewSession(opts ...Option) *Session {
	s := &Session{
		ID:             uuid.New(),
		fallbackBucket: GetConfig().FallbackBucket,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is the complete output of one parse: every message in dump order
// and the finalized call records keyed by correlation id.
type Result struct {
	Messages []*ParsedMessage       `json:"messages"`
	Calls    []*CallRecord          `json:"calls"`
	ByCallID map[string]*CallRecord `json:"-"`
}

// Parse reconstructs a complete in-memory dump. It never returns an error:
// the worst outcome of fully malformed input is an empty result.
func (s *Session) Parse(text string) *Result {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	blocks := Segment(text)
	correlator := NewCorrelator(s.fallbackBucket)
	result := &Result{ByCallID: make(map[string]*CallRecord)}

	unclassified := 0
	for _, block := range blocks {
		msg := ParseBlock(block)
		if msg.Type == RecordUnknown {
			unclassified++
		}
		result.Messages = append(result.Messages, msg)
		correlator.Process(msg)
	}
	correlator.Finalize()

	result.Calls = correlator.Calls()
	for _, call := range result.Calls {
		result.ByCallID[call.CallID] = call
	}

	logger.Info("dump parsed",
		"session_id", s.ID.String(),
		"blocks", len(blocks),
		"unclassified", unclassified,
		"calls", len(result.Calls))
	return result
}

// TowerMatch pairs a decoded location with the tower its keys resolved to.
type TowerMatch struct {
	FullKey string         `json:"fullKey"`
	Tower   *towerdb.Tower `json:"tower"`
}

// ResolveTowers produces lookup keys for every decoded location and passes
// them to the tower-lookup collaborator, returning matches keyed by
// normalized full cell id. The engine performs no caching or persistence of
// its own; with no collaborator attached the result is empty.
func (s *Session) ResolveTowers(result *Result) map[string]*towerdb.Tower {
	if s.towers == nil {
		return nil
	}
	matches := make(map[string]*towerdb.Tower)
	for _, call := range result.Calls {
		for _, loc := range call.Locations {
			if loc.Parsed == nil {
				continue
			}
			fullKey := cellid.FullKey(loc.Parsed.FullCellID)
			if fullKey == "" {
				continue
			}
			if _, done := matches[fullKey]; done {
				continue
			}
			shortKey, _ := cellid.ShortKey(loc.Parsed.FullCellID)
			if tower, ok := s.towers.Lookup(loc.Parsed.CompositeKey(), fullKey, shortKey); ok {
				matches[fullKey] = tower
			}
		}
	}
	return matches
}
