package googleauth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/nexcruit/ats-backend/internal/application"
)

var ErrInvalidCredential = errors.New("invalid google credential")

// Verifier validates Google Identity Services ID tokens issued for one client id.
type Verifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewVerifier(clientID string) *Verifier {
	return &Verifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *Verifier) Verify(ctx context.Context, credential string) (*application.GoogleIdentity, error) {
	if v.clientID == "" {
		return nil, errors.New("google sign-in is not configured")
	}
	payload, err := v.validate(ctx, credential, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCredential, err)
	}
	return identityFromPayload(payload)
}

func identityFromPayload(p *idtoken.Payload) (*application.GoogleIdentity, error) {
	email, _ := p.Claims["email"].(string)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: token carries no email", ErrInvalidCredential)
	}
	name, _ := p.Claims["name"].(string)
	verified, _ := p.Claims["email_verified"].(bool)
	return &application.GoogleIdentity{
		Subject:       p.Subject,
		Email:         email,
		Name:          name,
		EmailVerified: verified,
	}, nil
}
