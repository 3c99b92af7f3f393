package digest

import (
	"html/template"
	"strings"

	"github.com/mozjobs/mojo/internal/model"
)

// Descriptions are cut to this many words in the digest. Display concern
// only: the store keeps the full text, so the cut is always recoverable.
const maxExcerptWords = 150

const ellipsis = "..."

var digestTmpl = template.Must(template.New("digest").Parse(`
<p>Here are new job offers found on <a href="{{.ListingURL}}">{{.ListingURL}}</a>.</p>
{{range .Offers}}
<hr/>
<p><a href="{{.Link}}">{{.Title}}</a></p>

<p>
    <ul>
        <li>TEAM: {{.Team}}</li>
        <li>LOCATIONS: {{.Location}}</li>
        <li>POSITION: {{.Position}}</li>
    </ul>
</p>
<p>
    DESCRIPTION: {{.Excerpt}}
</p>
{{end}}`))

type digestData struct {
	ListingURL string
	Offers     []digestOffer
}

type digestOffer struct {
	model.JobOffer
	Excerpt string
}

// Render produces the HTML digest body for one run's new offers. Output is
// byte-identical for the same offers in the same order. Callers must not
// invoke it with an empty slice; an empty run sends no digest at all.
func Render(listingURL string, offers []model.JobOffer) (string, error) {
	data := digestData{
		ListingURL: listingURL,
		Offers:     make([]digestOffer, 0, len(offers)),
	}
	for _, o := range offers {
		data.Offers = append(data.Offers, digestOffer{
			JobOffer: o,
			Excerpt:  Excerpt(o.Description),
		})
	}

	var buf strings.Builder
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt returns the first maxExcerptWords words of s, with an ellipsis
// marker when anything was cut. Shorter descriptions pass through untouched.
func Excerpt(s string) string {
	words := strings.Fields(s)
	if len(words) <= maxExcerptWords {
		return s
	}
	return strings.Join(words[:maxExcerptWords], " ") + ellipsis
}
