package notifier

import (
	"context"
	"log/slog"

	"github.com/mozjobs/mojo/internal/model"
)

// Ensure LogNotifier implements model.Notifier.
var _ model.Notifier = (*LogNotifier)(nil)

// LogNotifier writes new offers to the given logger instead of sending
// email. Used in check mode and when no mail settings are configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier returns a notifier that logs each offer via slog.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs each offer with title, team, location, and link.
// Returns nil (stdout logging does not fail).
func (n *LogNotifier) Notify(_ context.Context, offers []model.JobOffer, _ string) error {
	for _, o := range offers {
		n.logger.Info("new offer",
			"title", o.Title,
			"team", o.Team,
			"location", o.Location,
			"link", o.Link,
		)
	}
	return nil
}
