package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/mozjobs/mojo/internal/model"
)

// Ensure JSONStore implements model.OfferStore.
var _ model.OfferStore = (*JSONStore)(nil)

// JSONStore persists the link → offer mapping as a single JSON document.
// The file is the sole durable artifact of the system: read once per run,
// replaced wholesale at the end.
type JSONStore struct {
	path   string
	offers map[string]model.JobOffer
}

// NewJSONStore creates a store backed by the JSON file at path. Call Load
// before the first DiffAndMerge.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path:   path,
		offers: make(map[string]model.JobOffer),
	}
}

// Load reads the previous snapshot. A missing file means a first run and
// yields an empty mapping; a file that exists but does not parse is fatal.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.offers = make(map[string]model.JobOffer)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading store %s: %w", s.path, err)
	}

	offers := make(map[string]model.JobOffer)
	if err := json.Unmarshal(data, &offers); err != nil {
		return &model.StoreCorruptError{Path: s.path, Err: err}
	}
	s.offers = offers
	return nil
}

// DiffAndMerge returns the subset of offers whose link is not yet known,
// preserving input order, and adopts every candidate into the in-memory
// mapping. Already-seen links get their record refreshed (last-seen wins)
// without being reported as new.
func (s *JSONStore) DiffAndMerge(offers []model.JobOffer) []model.JobOffer {
	var fresh []model.JobOffer
	for _, offer := range offers {
		if _, seen := s.offers[offer.Link]; !seen {
			fresh = append(fresh, offer)
		}
		s.offers[offer.Link] = offer
	}
	return fresh
}

// Save writes the full mapping back as one atomic replace: the snapshot is
// written to a temp file in the same directory, then renamed over the old
// one. An interrupted run never leaves a half-written store behind.
func (s *JSONStore) Save() error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".offers-*.json")
	if err != nil {
		return fmt.Errorf("creating temp store file: %w", err)
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.offers); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing store %s: %w", s.path, err)
	}
	return nil
}

// Len returns the number of stored offers.
func (s *JSONStore) Len() int {
	return len(s.offers)
}

// Offers returns the stored offers sorted by title, for display.
func (s *JSONStore) Offers() []model.JobOffer {
	offers := make([]model.JobOffer, 0, len(s.offers))
	for _, o := range s.offers {
		offers = append(offers, o)
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].Title != offers[j].Title {
			return offers[i].Title < offers[j].Title
		}
		return offers[i].Link < offers[j].Link
	})
	return offers
}
