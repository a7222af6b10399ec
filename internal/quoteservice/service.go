// Package quoteservice coordinates scanning, the persisted quote
// vault, and block rendering. It is the single owner of the random
// source and the clock, so selection and refresh behavior stay
// deterministic under test.
package quoteservice

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/block"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/quote"
	"github.com/starford/ansuz/internal/storage"
)

// Settings are the quote-engine knobs, mapped from the quotes section
// of the application config.
type Settings struct {
	QuoteTag              string
	MinimalQuoteLength    int
	DefaultReloadInterval int64
	BlockFormat           string
	InheritListingStyle   bool
	ScanOnBlockRender     bool
	AutoIDLength          int
	TemplateFolder        string
}

// Service coordinates storage, the persisted store, and the quote engine.
//
// A single mutex serialises every operation that scans or resolves: the
// refresh policy and the vault have a single-writer model, and a render
// must never interleave with a scan that is mid-replacement.
type Service struct {
	store storage.Provider
	db    index.Store
	cfg   Settings

	mu     sync.Mutex
	rng    *rand.Rand
	now    func() time.Time
	onScan func(ScanSummary)
}

// Option customises a Service.
type Option func(*Service)

// WithRand injects a deterministic random source.
func WithRand(rng *rand.Rand) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock injects a clock, used by the refresh policy.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithScanHook registers a callback invoked after every completed
// rescan, once the replacement vault is committed.
func WithScanHook(fn func(ScanSummary)) Option {
	return func(s *Service) { s.onScan = fn }
}

// NewService creates a quote service.
func NewService(store storage.Provider, db index.Store, cfg Settings, opts ...Option) *Service {
	s := &Service{
		store: store,
		db:    db,
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanSummary reports the outcome of a vault rescan.
type ScanSummary struct {
	Documents int `json:"documents"`
	Authors   int `json:"authors"`
	Quotes    int `json:"quotes"`
}

// Rescan scans every note carrying the quote tag and replaces the
// persisted vault with the result. The replacement is transactional, so
// concurrent reads see either the old vault or the new one, never a mix.
func (s *Service) Rescan(ctx context.Context) (ScanSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rescanLocked(ctx)
}

func (s *Service) rescanLocked(_ context.Context) (ScanSummary, error) {
	paths, err := s.db.PathsWithTag(s.cfg.QuoteTag)
	if err != nil {
		return ScanSummary{}, err
	}

	var docs []string
	for _, p := range paths {
		data, err := s.store.Read(p)
		if err != nil {
			slog.Warn("rescan: read failed", slog.String("path", p), slog.String("error", err.Error()))
			continue
		}
		docs = append(docs, string(data))
	}

	v := quote.Build(quote.Scan(docs, s.cfg.MinimalQuoteLength))
	if err := s.db.ReplaceVault(v); err != nil {
		return ScanSummary{}, err
	}

	sum := ScanSummary{Documents: len(docs), Authors: v.Len()}
	for _, e := range v.Entries() {
		sum.Quotes += len(e.Quotes)
	}
	slog.Info("rescan complete",
		slog.Int("documents", sum.Documents),
		slog.Int("authors", sum.Authors),
		slog.Int("quotes", sum.Quotes))
	if s.onScan != nil {
		s.onScan(sum)
	}
	return sum, nil
}

// RenderResult is a resolved block ready for display.
type RenderResult struct {
	ID      string   `json:"id,omitempty"`
	Author  string   `json:"author"`
	Text    string   `json:"text"`
	Lines   []string `json:"lines"`
	Classes []string `json:"classes"`
}

// RenderBlock parses block source, applies the refresh policy, and
// returns the rendered quote. Blocks without an id are stateless: they
// resolve fresh on every render and persist nothing.
func (s *Service) RenderBlock(ctx context.Context, source string) (*RenderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ScanOnBlockRender {
		if _, err := s.rescanLocked(ctx); err != nil {
			return nil, err
		}
	}

	decl, err := block.ParseDeclaration(source)
	if err != nil {
		return nil, err
	}

	reload := s.cfg.DefaultReloadInterval
	if decl.Reload != "" {
		if reload, err = block.ParseReload(decl.Reload); err != nil {
			return nil, err
		}
	}

	v, err := s.db.Vault()
	if err != nil {
		return nil, err
	}

	if decl.ID == "" {
		sel, err := quote.Resolve(v, decl.Search, s.rng)
		if err != nil {
			return nil, err
		}
		return s.buildResult("", sel.Author, sel.Text, decl.CustomClass, v), nil
	}

	md, err := s.db.GetBlock(decl.ID)
	if err != nil {
		return nil, err
	}
	// The declaration's interval wins over whatever was stored: the
	// block source is the user's statement of intent.
	if md != nil {
		md.ReloadInterval = reload
	}

	now := s.now().Unix()
	if block.NeedsRefresh(md, now) {
		sel, err := quote.Resolve(v, decl.Search, s.rng)
		if err != nil {
			return nil, err
		}
		md = &block.Metadata{
			ID:             decl.ID,
			Author:         sel.Author,
			CustomClass:    decl.CustomClass,
			ReloadInterval: reload,
			LastUpdate:     now,
			Text:           sel.Text,
		}
		if err := s.db.UpsertBlock(*md); err != nil {
			return nil, err
		}
	}

	return s.buildResult(md.ID, md.Author, md.Text, decl.CustomClass, v), nil
}

// RenderOneTime renders a one-time block for the given note file. The
// first successful resolution is frozen per filename; files under the
// template folder are exempt and always resolve fresh.
func (s *Service) RenderOneTime(ctx context.Context, source, filename string) (*RenderResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.ScanOnBlockRender {
		if _, err := s.rescanLocked(ctx); err != nil {
			return nil, err
		}
	}

	decl, err := block.ParseDeclaration(source)
	if err != nil {
		return nil, err
	}

	v, err := s.db.Vault()
	if err != nil {
		return nil, err
	}

	templated := s.inTemplateFolder(filename)
	if !templated {
		frozen, err := s.db.GetOneTime(filename)
		if err != nil {
			return nil, err
		}
		if frozen != nil {
			return s.buildResult("", frozen.Author, frozen.Content, decl.CustomClass, v), nil
		}
	}

	sel, err := quote.Resolve(v, decl.Search, s.rng)
	if err != nil {
		return nil, err
	}
	if !templated {
		otb := block.OneTimeBlock{
			Filename: filename,
			Search:   decl.Search,
			Author:   sel.Author,
			Content:  sel.Text,
		}
		if err := s.db.UpsertOneTime(otb); err != nil {
			return nil, err
		}
	}
	return s.buildResult("", sel.Author, sel.Text, decl.CustomClass, v), nil
}

func (s *Service) inTemplateFolder(filename string) bool {
	folder := strings.Trim(s.cfg.TemplateFolder, "/")
	if folder == "" || filename == "" {
		return false
	}
	rel, err := filepath.Rel(folder, filename)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, "../")
}

// buildResult assembles the display form of a resolved quote. With
// inherit-listing-style enabled the author renders as the styled token
// from the listing header.
func (s *Service) buildResult(id, author, text, customClass string, v *quote.Vault) *RenderResult {
	display := author
	if s.cfg.InheritListingStyle {
		if e, ok := v.Get(author); ok {
			display = e.AuthorDisplay
		}
	}
	return &RenderResult{
		ID:      id,
		Author:  author,
		Text:    text,
		Lines:   block.Render(s.cfg.BlockFormat, text, display),
		Classes: block.Classes(customClass),
	}
}

// MakerRequest describes a block to generate.
type MakerRequest struct {
	ID          string `json:"id"`
	Search      string `json:"search"`
	CustomClass string `json:"class"`
	Reload      string `json:"reload"`
	TargetPath  string `json:"target_path"`
}

// MakeBlock builds a fenced quote block declaration. The search
// expression must resolve against the current vault so the user cannot
// insert a block that renders an error. When TargetPath is set, the
// block is appended to that note.
func (s *Service) MakeBlock(ctx context.Context, req MakerRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, err := s.db.Vault()
	if err != nil {
		return "", err
	}
	if v.Len() == 0 {
		return "", apperr.ErrEmptyVault
	}
	if _, err := quote.ResolveAuthor(v, req.Search, s.rng); err != nil {
		return "", err
	}

	reload := req.Reload
	if reload == "" {
		reload = "1d"
	}
	if _, err := block.ParseReload(reload); err != nil {
		return "", err
	}

	id := req.ID
	if id == "" {
		id = block.RandomID(s.cfg.AutoIDLength, s.rng)
	}

	src := block.ToCodeBlock(block.Metadata{ID: id, CustomClass: req.CustomClass}, req.Search, reload)

	if req.TargetPath != "" {
		existing, err := s.store.Read(req.TargetPath)
		if err != nil {
			return "", fmt.Errorf("quoteservice: read target: %w", err)
		}
		content := strings.TrimRight(string(existing), "\n") + "\n\n" + src
		if err := s.store.Write(req.TargetPath, []byte(content)); err != nil {
			return "", err
		}
	}
	return src, nil
}

// Authors returns the vault entries in first-seen order.
func (s *Service) Authors(_ context.Context) ([]quote.Entry, error) {
	v, err := s.db.Vault()
	if err != nil {
		return nil, err
	}
	return v.Entries(), nil
}

// AuthorQuotes returns one author's listing.
func (s *Service) AuthorQuotes(_ context.Context, author string) (quote.Entry, error) {
	v, err := s.db.Vault()
	if err != nil {
		return quote.Entry{}, err
	}
	e, ok := v.Get(quote.Normalize(author))
	if !ok {
		return quote.Entry{}, apperr.ErrUnknownAuthor
	}
	return e, nil
}

// SearchQuotes delegates full-text quote search to the store.
func (s *Service) SearchQuotes(_ context.Context, query string, limit int) ([]index.QuoteHit, error) {
	return s.db.SearchQuotes(query, limit)
}

// ListBlocks returns all persisted block metadata.
func (s *Service) ListBlocks(_ context.Context) ([]block.Metadata, error) {
	return s.db.ListBlocks()
}

// ClearBlocks wipes all block metadata, forcing every block to refresh
// on its next render.
func (s *Service) ClearBlocks(_ context.Context) error {
	return s.db.ClearBlocks()
}

// ClearOneTime wipes all one-time block records.
func (s *Service) ClearOneTime(_ context.Context) error {
	return s.db.ClearOneTime()
}
