package payments

import (
	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/account"
	"github.com/stripe/stripe-go/v80/accountsession"
)

// StripeService wraps the Stripe Connect calls the vendor onboarding
// flow needs.
type StripeService struct {
	SecretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{SecretKey: secretKey}
}

// CreateExpressAccount creates a US express Connect account for a vendor
// and returns its ID.
func (s *StripeService) CreateExpressAccount(email, storeName string) (string, error) {
	params := &stripe.AccountParams{
		Type:         stripe.String(string(stripe.AccountTypeExpress)),
		Country:      stripe.String("US"),
		Email:        stripe.String(email),
		BusinessType: stripe.String("company"),
		Company: &stripe.AccountCompanyParams{
			Name: stripe.String(storeName),
		},
	}

	acct, err := account.New(params)
	if err != nil {
		return "", err
	}
	return acct.ID, nil
}

// CreateAccountSession creates an embedded-onboarding session for an
// existing Connect account and returns the client secret.
func (s *StripeService) CreateAccountSession(accountID string) (string, error) {
	params := &stripe.AccountSessionParams{
		Account: stripe.String(accountID),
		Components: &stripe.AccountSessionComponentsParams{
			AccountOnboarding: &stripe.AccountSessionComponentsAccountOnboardingParams{
				Enabled: stripe.Bool(true),
			},
		},
	}

	session, err := accountsession.New(params)
	if err != nil {
		return "", err
	}
	return session.ClientSecret, nil
}
