package auth

import (
	"fmt"

	"github.com/sarasvatiZen/replaylist/internal/providers"
	"github.com/sarasvatiZen/replaylist/internal/session"
	"github.com/sarasvatiZen/replaylist/internal/shared"
	"golang.org/x/oauth2"
)

// LoginURL builds the authorize URL for a provider's OAuth consent screen.
// The state parameter carries the session triple so the backend callback can
// restore the session after the redirect; it is percent-encoded exactly once
// for every provider.
//
// Apple sign-in goes through the native bridge handshake, not an authorize
// URL.
func LoginURL(cfg *shared.Config, s session.Session, p providers.Provider) (string, error) {
	if p == providers.Apple {
		return "", fmt.Errorf("%w: apple login uses the native bridge", shared.ErrInvalidArgument)
	}

	oc, ok := cfg.OAuth[p.Key()]
	if !ok || oc.ClientID == "" {
		return "", fmt.Errorf("%w: no oauth client configured for %s", shared.ErrMissingCredentials, p.Key())
	}

	conf := &oauth2.Config{
		ClientID:    oc.ClientID,
		RedirectURL: oc.RedirectURI,
		Scopes:      oc.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL: oc.AuthURL,
		},
	}

	return conf.AuthCodeURL(s.OAuthState()), nil
}
