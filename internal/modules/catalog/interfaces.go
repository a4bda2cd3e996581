package catalog

// EventPublisher receives domain events for the admin live feed. A nil
// publisher is valid and drops everything.
type EventPublisher interface {
	Publish(event string, payload any)
}
