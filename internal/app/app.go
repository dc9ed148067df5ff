// Package app wires the pieces a command needs: configuration, gateway
// client, history store and the restored session.
package app

import (
	"fmt"

	"github.com/lumenlabs/lumen-cli/internal/api"
	"github.com/lumenlabs/lumen-cli/internal/config"
	"github.com/lumenlabs/lumen-cli/internal/models"
	"github.com/lumenlabs/lumen-cli/internal/session"
	"github.com/lumenlabs/lumen-cli/internal/store"
)

// App bundles the per-invocation runtime of a command.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Store   *store.Store
	Session *session.Session
}

// Load opens the history store and restores the session from the persisted
// config. Callers must Close when done.
func Load() (*App, error) {
	cfg := config.Get()

	path, err := config.StorePath()
	if err != nil {
		return nil, fmt.Errorf("could not resolve store path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:  cfg,
		Client:  api.NewClient(cfg.Gateway.URL),
		Store:   st,
		Session: session.Restore(cfg, st),
	}

	// The local store answers immediately; wait for the first profile
	// snapshot so commands see a settled session.
	<-a.Session.Resolved()

	return a, nil
}

// Close releases the session subscription and the store.
func (a *App) Close() {
	a.Session.End()
	_ = a.Store.Close()
}

// RequirePrincipal returns the signed-in principal or an error telling the
// user to log in.
func (a *App) RequirePrincipal() (*models.Principal, error) {
	p := a.Session.Principal()
	if p == nil {
		return nil, fmt.Errorf("not logged in (run 'lumen auth login')")
	}
	return p, nil
}

// RequireUser gates feature commands: the principal must exist and the
// profile must be complete, unless the elevated allow-list applies.
func (a *App) RequireUser() (*models.Principal, error) {
	p, err := a.RequirePrincipal()
	if err != nil {
		return nil, err
	}

	if a.Session.Elevated() {
		return p, nil
	}

	prof := a.Session.Profile()
	if prof == nil || !prof.ProfileComplete {
		return nil, fmt.Errorf("profile incomplete (run 'lumen onboard')")
	}
	return p, nil
}
