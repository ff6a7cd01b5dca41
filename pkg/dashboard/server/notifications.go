package server

import (
	"context"
	"encoding/json"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/server/streaming"
)

// The hub delivers these to the user's open tabs so they all reflect
// the session and profile state without polling.

func notifySignedIn(ctx context.Context, user *model.User) {
	jsonString, _ := json.Marshal(streaming.SessionEvent{
		StreamingEvent: streaming.StreamingEvent{Event: streaming.SignedInEventString},
		Login:          user.Login,
		Providers:      user.Providers,
	})
	send(ctx, user.Login, jsonString)
}

func notifySignedOut(ctx context.Context, user *model.User) {
	jsonString, _ := json.Marshal(streaming.SessionEvent{
		StreamingEvent: streaming.StreamingEvent{Event: streaming.SignedOutEventString},
		Login:          user.Login,
	})
	send(ctx, user.Login, jsonString)
}

func notifyProviderChange(ctx context.Context, login string, provider string, event string) {
	jsonString, _ := json.Marshal(streaming.ProviderEvent{
		StreamingEvent: streaming.StreamingEvent{Event: event},
		Login:          login,
		Provider:       provider,
	})
	send(ctx, login, jsonString)
}

func notifyPinsUpdated(ctx context.Context, login string, pinnedIDs []int64) {
	jsonString, _ := json.Marshal(streaming.PinsUpdatedEvent{
		StreamingEvent: streaming.StreamingEvent{Event: streaming.PinsUpdatedEventString},
		Login:          login,
		PinnedIDs:      pinnedIDs,
	})
	send(ctx, login, jsonString)
}

func notifyAcceptanceChanged(ctx context.Context, login string, accepted bool) {
	jsonString, _ := json.Marshal(streaming.AcceptanceChangedEvent{
		StreamingEvent: streaming.StreamingEvent{Event: streaming.AcceptanceChangedEventString},
		Login:          login,
		Accepted:       accepted,
	})
	send(ctx, login, jsonString)
}

func send(ctx context.Context, login string, message []byte) {
	clientHub, ok := ctx.Value("clientHub").(*streaming.ClientHub)
	if !ok || clientHub == nil {
		return
	}
	clientHub.Send <- &streaming.ClientMessage{
		ClientId: login,
		Message:  message,
	}
}
