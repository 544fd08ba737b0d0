package notifications

type Notifier interface {
	NotifyCatalogUnreadable(detail string)
	NotifyCatalogRecovered(movies, series int)
	Test() error
}
