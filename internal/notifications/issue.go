package notifications

// NewIssueNotification builds a notification reporting a problem with the
// timer integration. The "Report issue" action hands reportURL to open and
// dismisses the notification.
func NewIssueNotification(message, reportURL string, source Timer, registry *Registry, open func(url string) error) *Notification {
	notification := NewNotification(KindIssue, source, registry)
	notification.release()
	notification.content = Content{
		Title:   registry.options.SourceName,
		Body:    message,
		Urgency: UrgencyHigh,
	}.WithResident(false)

	if reportURL != "" && open != nil {
		notification.AddAction("Report issue", func() {
			if err := open(reportURL); err != nil {
				notification.logger.Warn().Err(err).Str("url", reportURL).Msg("open issue tracker")
			}
			notification.Destroy(ReasonDismissed)
		})
	}
	return notification
}
