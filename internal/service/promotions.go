package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"github.com/jask/showcase/internal/database"
	"github.com/jask/showcase/internal/database/repository"
	"github.com/jask/showcase/internal/source"
)

// fuzzy matches further apart than this share of the longer string are dropped
const maxRelativeDistance = 0.4

// ErrNoMatch is returned when a reference matches no promotion.
var ErrNoMatch = errors.New("no matching promotion")

// PromotionService manages the promotions shown on the home page.
type PromotionService struct {
	DB         *sql.DB
	Promotions *repository.PromotionRepo
}

// AddInput describes a new promotion.
type AddInput struct {
	Placement string
	Image     string
	Link      string
	Title     string
}

// Add stores a promotion at the end of its placement.
func (s *PromotionService) Add(ctx context.Context, in AddInput) (repository.Promotion, error) {
	in.Image = strings.TrimSpace(in.Image)
	if in.Image == "" {
		return repository.Promotion{}, errors.New("image required")
	}
	if in.Placement == "" {
		in.Placement = repository.PlacementFeatured
	}
	order, err := s.Promotions.NextSortOrder(ctx, in.Placement)
	if err != nil {
		return repository.Promotion{}, fmt.Errorf("next sort order: %w", err)
	}
	p := repository.Promotion{
		ID:        uuid.NewString(),
		Placement: in.Placement,
		ImageRef:  in.Image,
		Link:      optional(in.Link),
		Title:     optional(in.Title),
		SortOrder: order,
		Active:    true,
	}
	if err := s.Promotions.Upsert(ctx, p); err != nil {
		return repository.Promotion{}, fmt.Errorf("save promotion: %w", err)
	}
	return p, nil
}

// Match is a fuzzy search hit.
type Match struct {
	Promotion repository.Promotion
	Distance  int
}

// Find ranks promotions by edit distance between query and their title
// (or image when untitled). Substring hits rank first.
func (s *PromotionService) Find(ctx context.Context, query string, limit int) ([]Match, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	all, err := s.Promotions.List(ctx, repository.PromotionFilters{})
	if err != nil {
		return nil, err
	}
	var out []Match
	for _, p := range all {
		name := strings.ToLower(promotionName(p))
		if strings.Contains(name, query) {
			out = append(out, Match{Promotion: p, Distance: len(name) - len(query)})
			continue
		}
		dist := levenshtein.ComputeDistance(query, name)
		if float64(dist)/float64(max(len(query), len(name))) < maxRelativeDistance {
			out = append(out, Match{Promotion: p, Distance: dist})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Remove deletes a promotion by id, or by title when exactly one title
// matches. Otherwise the closest titles are suggested in the error.
func (s *PromotionService) Remove(ctx context.Context, ref string) (repository.Promotion, error) {
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return repository.Promotion{}, err
	}
	if _, err := s.Promotions.Delete(ctx, p.ID); err != nil {
		return repository.Promotion{}, fmt.Errorf("delete promotion: %w", err)
	}
	return p, nil
}

// SetActive shows or hides a promotion without deleting it.
func (s *PromotionService) SetActive(ctx context.Context, ref string, active bool) (repository.Promotion, error) {
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return repository.Promotion{}, err
	}
	if err := s.Promotions.SetActive(ctx, p.ID, active); err != nil {
		return repository.Promotion{}, err
	}
	p.Active = active
	return p, nil
}

// Move places a promotion at position to (0-based, clamped) within its
// placement and renumbers the placement in one transaction.
func (s *PromotionService) Move(ctx context.Context, ref string, to int) (repository.Promotion, error) {
	p, err := s.resolve(ctx, ref)
	if err != nil {
		return repository.Promotion{}, err
	}
	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repository.NewPromotionRepo(tx)
		list, err := repo.List(ctx, repository.PromotionFilters{Placement: p.Placement})
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(list))
		for _, other := range list {
			if other.ID != p.ID {
				ids = append(ids, other.ID)
			}
		}
		to = min(max(to, 0), len(ids))
		ids = append(ids[:to], append([]string{p.ID}, ids[to:]...)...)
		return repo.Reorder(ctx, ids)
	})
	if err != nil {
		return repository.Promotion{}, fmt.Errorf("move promotion: %w", err)
	}
	p.SortOrder = to
	return p, nil
}

// resolve finds a promotion by id, or by title when exactly one title
// matches.
func (s *PromotionService) resolve(ctx context.Context, ref string) (repository.Promotion, error) {
	if p, err := s.Promotions.Get(ctx, ref); err != nil {
		return repository.Promotion{}, err
	} else if p != nil {
		return *p, nil
	}

	matches, err := s.Find(ctx, ref, 3)
	if err != nil {
		return repository.Promotion{}, err
	}
	var exact []repository.Promotion
	for _, m := range matches {
		if strings.EqualFold(promotionName(m.Promotion), strings.TrimSpace(ref)) {
			exact = append(exact, m.Promotion)
		}
	}
	if len(exact) == 1 {
		return exact[0], nil
	}
	if len(matches) == 0 {
		return repository.Promotion{}, fmt.Errorf("%q: %w", ref, ErrNoMatch)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, fmt.Sprintf("%q (%s)", promotionName(m.Promotion), m.Promotion.ID))
	}
	return repository.Promotion{}, fmt.Errorf("%q: %w; did you mean %s?", ref, ErrNoMatch, strings.Join(names, ", "))
}

// ImportResult summarises an Import.
type ImportResult struct {
	Imported int
	Skipped  int
}

// Import stores every entry of a YAML item file in one transaction. Ids are
// derived from placement and image, so importing the same file twice skips
// what is already there.
func (s *PromotionService) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	entries, err := source.DecodeEntries(r)
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{}
	err = database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		repo := repository.NewPromotionRepo(tx)
		next := map[string]int{}
		for _, e := range entries {
			id := uuid.NewSHA1(uuid.NameSpaceOID, []byte("promo:"+e.Placement+":"+e.Image)).String()
			existing, err := repo.Get(ctx, id)
			if err != nil {
				return err
			}
			if existing != nil {
				res.Skipped++
				continue
			}
			order, ok := next[e.Placement]
			if !ok {
				if order, err = repo.NextSortOrder(ctx, e.Placement); err != nil {
					return err
				}
			}
			next[e.Placement] = order + 1
			p := repository.Promotion{
				ID:        id,
				Placement: e.Placement,
				ImageRef:  e.Image,
				Link:      optional(e.Link),
				Title:     optional(e.Title),
				SortOrder: order,
				Active:    !e.Inactive,
			}
			if err := repo.Upsert(ctx, p); err != nil {
				return fmt.Errorf("import %s: %w", e.Image, err)
			}
			res.Imported++
		}
		return nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	return res, nil
}

// Export writes every promotion in the item file format.
func (s *PromotionService) Export(ctx context.Context, w io.Writer) error {
	all, err := s.Promotions.List(ctx, repository.PromotionFilters{})
	if err != nil {
		return err
	}
	entries := make([]source.Entry, 0, len(all))
	for _, p := range all {
		e := source.Entry{Placement: p.Placement, Image: p.ImageRef, Inactive: !p.Active}
		if p.Link != nil {
			e.Link = *p.Link
		}
		if p.Title != nil {
			e.Title = *p.Title
		}
		entries = append(entries, e)
	}
	return source.EncodeEntries(w, entries)
}

func promotionName(p repository.Promotion) string {
	if p.Title != nil && *p.Title != "" {
		return *p.Title
	}
	return p.ImageRef
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
