package account

import (
	"context"
	"fmt"

	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// activate signs and sends the initial device activation request, returning
// the device URN the server assigns.
func activate(ctx context.Context, client httpclient.HttpClient, activationURL string, signer *adeptcrypto.Signer, user string, dev *DeviceInfo) (string, error) {
	nonce, err := adept.RandomNonce()
	if err != nil {
		return "", err
	}

	req := &adept.ActivateRequest{
		XMLNSAdept:    adept.Namespace,
		RequestType:   "initial",
		Fingerprint:   dev.Fingerprint,
		DeviceType:    dev.DeviceType,
		ClientOS:      dev.ClientOS,
		ClientLocale:  dev.ClientLocale,
		ClientVersion: dev.ClientVersion,
		TargetDevice:  dev.TargetDevice(),
		Nonce:         nonce,
		Expiration:    adept.MakeExpiration(),
		User:          user,
	}

	signedBody, err := adept.Sign(signer, req)
	if err != nil {
		return "", fmt.Errorf("account: sign activate request: %w", err)
	}

	url := adept.MakeURL(activationURL, "/Activate")
	resp, err := adept.PostXML[adept.ActivateResponse](ctx, client, url, signedBody)
	if err != nil {
		return "", fmt.Errorf("account: activate: %w", err)
	}
	return resp.Device, nil
}
