package account

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// DefaultActivationURL is Adobe's production activation service base URL.
const DefaultActivationURL = "https://adeactivate.adobe.com/adept"

// LoadOrCreate loads the account record at path if one exists; otherwise it
// runs services discovery, anonymous sign-in, and device activation, and
// persists the result before returning.
func LoadOrCreate(ctx context.Context, client httpclient.HttpClient, path string) (*Account, error) {
	if Exists(path) {
		return Load(path)
	}

	a, err := create(ctx, client)
	if err != nil {
		return nil, err
	}
	if err := a.Save(path); err != nil {
		return nil, err
	}
	return a, nil
}

func create(ctx context.Context, client httpclient.HttpClient) (*Account, error) {
	actInfoURL := adept.MakeURL(DefaultActivationURL, "/ActivationServiceInfo")
	actInfo, err := adept.Get[adept.ActivationServiceInfo](ctx, client, actInfoURL)
	if err != nil {
		return nil, fmt.Errorf("account: fetch activation service info: %w", err)
	}

	authInfoURL := adept.MakeURL(actInfo.AuthURL, "/AuthenticationServiceInfo")
	authInfo, err := adept.Get[adept.AuthenticationServiceInfo](ctx, client, authInfoURL)
	if err != nil {
		return nil, fmt.Errorf("account: fetch authentication service info: %w", err)
	}

	authCertDER, err := base64.StdEncoding.DecodeString(authInfo.Certificate)
	if err != nil {
		return nil, fmt.Errorf("account: decode auth certificate: %w", err)
	}

	signIn, err := anonymousSignIn(ctx, client, authInfo, authCertDER)
	if err != nil {
		return nil, err
	}

	dev, err := NewDeviceInfo()
	if err != nil {
		return nil, fmt.Errorf("account: generate device info: %w", err)
	}

	authKey, err := adeptcrypto.ParsePKCS8PrivateKey(signIn.privateAuthKeyDER)
	if err != nil {
		return nil, fmt.Errorf("account: parse server-issued private auth key: %w", err)
	}
	signer := adeptcrypto.NewSigner(authKey)

	device, err := activate(ctx, client, DefaultActivationURL, signer, signIn.user, dev)
	if err != nil {
		return nil, err
	}

	return &Account{
		Services: Services{
			ActivationURL:   DefaultActivationURL,
			AuthURL:         actInfo.AuthURL,
			AuthCertificate: authCertDER,
		},
		UserCredentials: UserCredentials{
			User:               signIn.user,
			PrivateAuthKey:     signIn.privateAuthKeyDER,
			UserCertificate:    signIn.userCertificateDER,
			PrivateLicenseKey:  signIn.privateLicenseKeyDER,
			LicenseCertificate: signIn.licenseCertificateDER,
		},
		DeviceInfo:      *dev,
		ActivatedDevice: device,
	}, nil
}
