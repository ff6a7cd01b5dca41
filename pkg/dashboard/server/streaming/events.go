package streaming

const SignedInEventString = "signedIn"
const SignedOutEventString = "signedOut"
const ProviderLinkedEventString = "providerLinked"
const ProviderUnlinkedEventString = "providerUnlinked"
const GithubTokenLinkedEventString = "githubTokenLinked"
const PinsUpdatedEventString = "pinsUpdated"
const AcceptanceChangedEventString = "acceptanceChanged"

type StreamingEvent struct {
	Event string `json:"event"`
}

// SessionEvent notifies a user's open tabs about a change of their
// signed-in state or linked providers
type SessionEvent struct {
	Login     string   `json:"login"`
	Providers []string `json:"providers"`
	StreamingEvent
}

type ProviderEvent struct {
	Login    string `json:"login"`
	Provider string `json:"provider"`
	StreamingEvent
}

type PinsUpdatedEvent struct {
	Login     string  `json:"login"`
	PinnedIDs []int64 `json:"pinnedIds"`
	StreamingEvent
}

type AcceptanceChangedEvent struct {
	Login    string `json:"login"`
	Accepted bool   `json:"accepted"`
	StreamingEvent
}
