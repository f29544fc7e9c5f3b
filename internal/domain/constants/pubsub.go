// Package constants holds configuration values shared across layers.
package constants

// EnvLocal is the env.env value of a developer machine.
const EnvLocal = "local"

// Pub/Sub providers accepted by pubsub.provider.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// LocalPubSubSubscription is the subscription name stamped on locally pushed messages.
const LocalPubSubSubscription = "projects/local/subscriptions/lead-sub"
