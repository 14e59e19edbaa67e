package providers

import (
	"context"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
)

var _ AuthProvider = &FirebaseAuthProvider{}

// FirebaseAuthProvider verifies Firebase ID tokens issued to players.
type FirebaseAuthProvider struct {
	auth *auth.Client
}

func NewFirebaseAuthProvider(ctx context.Context, projectID string, apiKey string) (*FirebaseAuthProvider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, eris.Wrap(err, "failed to initialize firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "failed to get firebase auth client")
	}

	return &FirebaseAuthProvider{auth: client}, nil
}

// VerifyToken checks the ID token and picks the player's display name from
// the name claim, falling back to the email and then to the uid.
func (p *FirebaseAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	token, err := p.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, eris.Wrap(err, "failed to verify id token")
	}

	name, _ := token.Claims["name"].(string)
	if name == "" {
		name, _ = token.Claims["email"].(string)
	}
	if name == "" {
		name = token.UID
	}

	return &TokenClaims{
		UID:  token.UID,
		Name: displayName(name),
	}, nil
}
