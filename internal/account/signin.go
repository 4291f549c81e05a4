package account

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"log"

	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
	"github.com/ntqbit/adobededrmtools/internal/httpclient"
)

// signInResult is the key material the server-side of anonymous sign-in
// produces, superseding what was generated locally.
type signInResult struct {
	user                  string
	privateAuthKeyDER     []byte
	userCertificateDER    []byte
	privateLicenseKeyDER  []byte
	licenseCertificateDER []byte
}

// buildSignInData assembles the credentials blob RSA-encrypted under the
// auth certificate: K || len_u8(user) || user || len_u8(pass) || pass.
func buildSignInData(k []byte, user, pass string) []byte {
	buf := make([]byte, 0, len(k)+1+len(user)+1+len(pass))
	buf = append(buf, k...)
	buf = append(buf, byte(len(user)))
	buf = append(buf, user...)
	buf = append(buf, byte(len(pass)))
	buf = append(buf, pass...)
	return buf
}

// anonymousSignIn runs the anonymous SignInDirect exchange: wrap an
// ephemeral key, generate and ship two local RSA keypairs, then unwrap the
// server-issued credentials that supersede them.
func anonymousSignIn(ctx context.Context, client httpclient.HttpClient, authInfo *adept.AuthenticationServiceInfo, authCertDER []byte) (*signInResult, error) {
	if !authInfo.HasMethod("anonymous") {
		return nil, fmt.Errorf("account: server does not advertise the anonymous sign-in method")
	}

	k := make([]byte, 16)
	if _, err := io.ReadFull(adeptcrypto.Rand, k); err != nil {
		return nil, fmt.Errorf("account: generate ephemeral key: %w", err)
	}

	signInData, err := adeptcrypto.EncryptWithCert(authCertDER, buildSignInData(k, "anonymous", ""))
	if err != nil {
		return nil, fmt.Errorf("account: encrypt sign-in data: %w", err)
	}

	authKP, err := adeptcrypto.MakeKeypair()
	if err != nil {
		return nil, fmt.Errorf("account: generate auth keypair: %w", err)
	}
	licenseKP, err := adeptcrypto.MakeKeypair()
	if err != nil {
		return nil, fmt.Errorf("account: generate license keypair: %w", err)
	}

	encPrivAuth, err := adeptcrypto.EncryptAES(k, authKP.PrivateDER)
	if err != nil {
		return nil, fmt.Errorf("account: wrap auth private key: %w", err)
	}
	encPrivLicense, err := adeptcrypto.EncryptAES(k, licenseKP.PrivateDER)
	if err != nil {
		return nil, fmt.Errorf("account: wrap license private key: %w", err)
	}

	req := adept.NewAnonymousSignInRequest(
		base64.StdEncoding.EncodeToString(signInData),
		base64.StdEncoding.EncodeToString(authKP.PublicDER),
		base64.StdEncoding.EncodeToString(encPrivAuth),
		base64.StdEncoding.EncodeToString(licenseKP.PublicDER),
		base64.StdEncoding.EncodeToString(encPrivLicense),
	)
	reqBody, err := xml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("account: marshal sign-in request: %w", err)
	}

	url := adept.MakeURL(authInfo.AuthURL, "/SignInDirect")
	resp, err := adept.PostXML[adept.SignInResponse](ctx, client, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("account: sign in: %w", err)
	}

	pkcs12Data, err := base64.StdEncoding.DecodeString(resp.Pkcs12)
	if err != nil {
		return nil, fmt.Errorf("account: decode pkcs12: %w", err)
	}
	password := base64.StdEncoding.EncodeToString(k)
	serverAuthKeyDER, userCertDER, err := adeptcrypto.UnwrapPKCS12(pkcs12Data, password)
	if err != nil {
		return nil, fmt.Errorf("account: unwrap pkcs12: %w", err)
	}
	if !bytes.Equal(serverAuthKeyDER, authKP.PrivateDER) {
		log.Printf("account: server-issued private auth key differs from the locally generated one; trusting the server")
	}

	encPrivLicenseServer, err := base64.StdEncoding.DecodeString(resp.EncryptedPrivateLicenseKey)
	if err != nil {
		return nil, fmt.Errorf("account: decode encrypted private license key: %w", err)
	}
	serverPrivLicenseDER, err := adeptcrypto.DecryptAES(k, encPrivLicenseServer)
	if err != nil {
		return nil, fmt.Errorf("account: decrypt private license key: %w", err)
	}
	if !bytes.Equal(serverPrivLicenseDER, licenseKP.PrivateDER) {
		log.Printf("account: server-returned private license key differs from the locally generated one; trusting the server")
	}

	licenseCertDER, err := base64.StdEncoding.DecodeString(resp.LicenseCertificate)
	if err != nil {
		return nil, fmt.Errorf("account: decode license certificate: %w", err)
	}

	return &signInResult{
		user:                  resp.User,
		privateAuthKeyDER:     serverAuthKeyDER,
		userCertificateDER:    userCertDER,
		privateLicenseKeyDER:  serverPrivLicenseDER,
		licenseCertificateDER: licenseCertDER,
	}, nil
}
