// Package fulfillment runs the three-step operator exchange — auth,
// license-service init, fulfill — that turns a parsed ACSM into a list of
// purchased resources.
package fulfillment

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/xml"
	"fmt"

	"github.com/ntqbit/adobededrmtools/internal/account"
	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/canonhash"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// Download is the resolved download descriptor for a resource. SimpleDownload
// is the only implementer today; this is a marker interface so a future
// download-type variant can be added without an API break.
type Download interface {
	isDownload()
}

// SimpleDownload is a plain HTTP GET download of the resource bytes.
type SimpleDownload struct {
	URL string
}

func (SimpleDownload) isDownload() {}

// Resource is one purchased resource extracted from a fulfillment result.
type Resource struct {
	URN          string
	MimeType     string
	EncryptedKey []byte
	Download     Download
}

// Fulfill runs operator-auth, license-service-init, and fulfill in sequence
// against an already-activated account, returning the purchased resources.
func Fulfill(ctx context.Context, client httpclient.HttpClient, a *account.Account, acsm *adept.Acsm) ([]Resource, error) {
	operatorURL := acsm.OperatorURL()

	if err := operatorAuth(ctx, client, operatorURL, a); err != nil {
		return nil, fmt.Errorf("fulfillment: operator auth: %w", err)
	}

	if err := initLicenseService(ctx, client, a, operatorURL); err != nil {
		return nil, fmt.Errorf("fulfillment: init license service: %w", err)
	}

	env, err := fulfill(ctx, client, a, operatorURL, acsm)
	if err != nil {
		return nil, fmt.Errorf("fulfillment: fulfill: %w", err)
	}

	return extractResources(env)
}

func signerFromAccount(a *account.Account) (*adeptcrypto.Signer, error) {
	priv, err := adeptcrypto.ParsePKCS8PrivateKey(a.UserCredentials.PrivateAuthKey)
	if err != nil {
		return nil, fmt.Errorf("parse private auth key: %w", err)
	}
	return adeptcrypto.NewSigner(priv), nil
}

func operatorAuth(ctx context.Context, client httpclient.HttpClient, operatorURL string, a *account.Account) error {
	req := &adept.FulfillmentCredentials{
		XMLNSAdept:                adept.Namespace,
		User:                      a.UserCredentials.User,
		Certificate:               base64.StdEncoding.EncodeToString(a.UserCredentials.UserCertificate),
		LicenseCertificate:        base64.StdEncoding.EncodeToString(a.UserCredentials.LicenseCertificate),
		AuthenticationCertificate: base64.StdEncoding.EncodeToString(a.Services.AuthCertificate),
	}
	body, err := xml.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal auth request: %w", err)
	}
	url := adept.MakeURL(operatorURL, "/Auth")
	return adept.PostEmpty(ctx, client, url, body)
}

func initLicenseService(ctx context.Context, client httpclient.HttpClient, a *account.Account, operatorURL string) error {
	nonce, err := adept.RandomNonce()
	if err != nil {
		return err
	}
	req := &adept.InitLicenseServiceRequest{
		XMLNSAdept:  adept.Namespace,
		Identity:    "user",
		OperatorURL: operatorURL,
		Nonce:       nonce,
		Expiration:  adept.MakeExpiration(),
		User:        a.UserCredentials.User,
	}

	signer, err := signerFromAccount(a)
	if err != nil {
		return err
	}
	signedBody, err := adept.Sign(signer, req)
	if err != nil {
		return fmt.Errorf("sign init license service request: %w", err)
	}

	url := adept.MakeURL(a.Services.ActivationURL, "/InitLicenseService")
	return adept.PostEmpty(ctx, client, url, signedBody)
}

// fulfill builds the signed fulfill body with the ACSM embedded verbatim.
// The raw-token substitution happens both before hashing (so the signature
// covers the exact bytes the operator will see) and again after signing (to
// reinsert the live token in place of the sentinel the second marshal
// regenerates).
func fulfill(ctx context.Context, client httpclient.HttpClient, a *account.Account, operatorURL string, acsm *adept.Acsm) (*adept.Envelope, error) {
	dev := a.DeviceInfo
	req := &adept.FulfillRequest{
		XMLNSAdept:   adept.Namespace,
		User:         a.UserCredentials.User,
		Device:       a.ActivatedDevice,
		DeviceType:   dev.DeviceType,
		TargetDevice: dev.FulfillmentTargetDevice(a.UserCredentials.User, a.ActivatedDevice),
	}

	signer, err := signerFromAccount(a)
	if err != nil {
		return nil, err
	}

	unsigned, err := xml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal fulfill request: %w", err)
	}
	withToken, err := adept.SubstituteFulfillmentToken(unsigned, acsm.Raw())
	if err != nil {
		return nil, err
	}

	digest, err := canonhash.SumSHA1(sha1.New(), withToken)
	if err != nil {
		return nil, fmt.Errorf("canonical hash: %w", err)
	}
	sig, err := signer.SignDigest(digest)
	if err != nil {
		return nil, fmt.Errorf("sign fulfill request: %w", err)
	}
	req.SetSignature(sig)

	signed, err := xml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal signed fulfill request: %w", err)
	}
	signedWithToken, err := adept.SubstituteFulfillmentToken(signed, acsm.Raw())
	if err != nil {
		return nil, err
	}

	url := adept.MakeURL(operatorURL, "/Fulfill")
	return adept.PostXML[adept.Envelope](ctx, client, url, signedWithToken)
}

func extractResources(env *adept.Envelope) ([]Resource, error) {
	items := env.FulfillmentResult.ResourceItemInfos
	resources := make([]Resource, 0, len(items))
	for _, item := range items {
		if item.DownloadType != "simple" {
			return nil, fmt.Errorf("fulfillment: unsupported downloadType %q", item.DownloadType)
		}
		key, err := base64.StdEncoding.DecodeString(item.LicenseToken.EncryptedKey.Key)
		if err != nil {
			return nil, fmt.Errorf("fulfillment: decode encrypted key: %w", err)
		}
		resources = append(resources, Resource{
			URN:          item.Resource,
			MimeType:     item.LicenseToken.ResourceItemType,
			EncryptedKey: key,
			Download:     SimpleDownload{URL: item.Src},
		})
	}
	return resources, nil
}
