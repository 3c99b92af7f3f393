package store

import "github.com/mozjobs/mojo/internal/model"

// NopStore is a no-op store used in check mode. It remembers nothing, so
// every candidate is reported as new and nothing is persisted.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Load() error { return nil }

func (s *NopStore) DiffAndMerge(offers []model.JobOffer) []model.JobOffer { return offers }

func (s *NopStore) Save() error { return nil }
