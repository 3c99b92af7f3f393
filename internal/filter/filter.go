package filter

import "github.com/mozjobs/mojo/internal/model"

// TeamFilter accepts offers whose team is exactly one of the configured
// names. Matching is case-sensitive with no substring fallback: "IT" and
// "it" are different teams.
type TeamFilter struct {
	teams map[string]struct{}
}

// NewTeamFilter returns a filter over the given accepted team names.
func NewTeamFilter(teams []string) *TeamFilter {
	set := make(map[string]struct{}, len(teams))
	for _, t := range teams {
		set[t] = struct{}{}
	}
	return &TeamFilter{teams: set}
}

// Match returns true if the offer's team is a member of the accepted set.
func (f *TeamFilter) Match(offer model.JobOffer) bool {
	_, ok := f.teams[offer.Team]
	return ok
}
