package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/simantic-io/simantic/pkg/dashboard/model"
	"github.com/simantic-io/simantic/pkg/dashboard/server/session"
	"github.com/simantic-io/simantic/pkg/dashboard/store"
	"github.com/sirupsen/logrus"
)

func waitlistStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := ctx.Value("user").(*model.User)
	dao := ctx.Value("store").(*store.Store)

	statusString, _ := json.Marshal(map[string]interface{}{
		"accepted": session.Accepted(dao, user),
	})

	w.WriteHeader(200)
	w.Write(statusString)
}

// acceptUser moves a waitlisted user into the accepted set. Admin
// API, authenticated with the service JWT.
func acceptUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Login string `json:"login"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.Login == "" {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	err = dao.AcceptUser(&model.AcceptedUser{
		Login:    payload.Login,
		Accepted: time.Now().Unix(),
	})
	if err != nil {
		logrus.Errorf("cannot accept user %s: %s", payload.Login, err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	notifyAcceptanceChanged(ctx, payload.Login, true)
	w.WriteHeader(http.StatusCreated)
}

func revokeUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dao := ctx.Value("store").(*store.Store)

	var payload struct {
		Login string `json:"login"`
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	if err != nil || payload.Login == "" {
		http.Error(w, http.StatusText(400), 400)
		return
	}

	err = dao.RevokeAcceptance(payload.Login)
	if err != nil {
		logrus.Errorf("cannot revoke acceptance of %s: %s", payload.Login, err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	notifyAcceptanceChanged(ctx, payload.Login, false)
	w.WriteHeader(http.StatusNoContent)
}
