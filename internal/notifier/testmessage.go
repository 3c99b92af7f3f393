package notifier

import (
	"context"

	"github.com/mozjobs/mojo/internal/digest"
	"github.com/mozjobs/mojo/internal/model"
)

// SendTestDigest sends a dummy one-offer digest to verify the integration works.
func SendTestDigest(ctx context.Context, n model.Notifier) error {
	offers := []model.JobOffer{{
		Title:       "Test Position — Integration Verified",
		Location:    "Remote",
		Position:    "Full time",
		Team:        "Engineering",
		Link:        "https://careers.mozilla.org/en-US/listings",
		Description: "This is a test digest. If you can read this, delivery works.",
	}}

	body, err := digest.Render("https://careers.mozilla.org/en-US/listings", offers)
	if err != nil {
		return err
	}
	return n.Notify(ctx, offers, body)
}
