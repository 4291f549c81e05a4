package account

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestAccountSaveLoadRoundTrip(t *testing.T) {
	a := &Account{
		Services: Services{
			ActivationURL:   "https://adeactivate.adobe.com/adept",
			AuthURL:         "https://auth.example/adept",
			AuthCertificate: []byte{1, 2, 3},
		},
		UserCredentials: UserCredentials{
			User:               "urn:uuid:user",
			PrivateAuthKey:     []byte{4, 5, 6},
			UserCertificate:    []byte{7, 8, 9},
			PrivateLicenseKey:  []byte{10, 11, 12},
			LicenseCertificate: []byte{13, 14, 15},
		},
		DeviceInfo: DeviceInfo{
			SoftwareVersion: "10.0.4",
			ClientOS:        "Linux",
			ClientLocale:    "C",
			ClientVersion:   "Desktop",
			DeviceType:      "standalone",
			Fingerprint:     "Zm9v",
		},
		ActivatedDevice: "urn:uuid:device",
	}

	path := filepath.Join(t.TempDir(), "account.json")
	if Exists(path) {
		t.Fatal("account should not exist yet")
	}
	if err := a.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists(path) {
		t.Fatal("account should exist after Save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(a, loaded) {
		t.Fatalf("round-trip mismatch:\n got  %+v\n want %+v", loaded, a)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error loading a missing account file")
	}
}

// TestUserAndDeviceAreUrnUuid verifies that the fixture URNs used for the
// User and ActivatedDevice fields are well-formed urn:uuid: identifiers, the
// shape every ADEPT server issues them in.
func TestUserAndDeviceAreUrnUuid(t *testing.T) {
	a := &Account{
		UserCredentials: UserCredentials{User: "urn:uuid:7b1f6e0a-9b0e-4a7b-9e0a-1f6e0a9b0e4a"},
		ActivatedDevice: "urn:uuid:3e0a9b0e-4a7b-9e0a-1f6e-0a9b0e4a7b1f",
	}

	for _, urn := range []string{a.UserCredentials.User, a.ActivatedDevice} {
		raw, ok := strings.CutPrefix(urn, "urn:uuid:")
		if !ok {
			t.Fatalf("%q does not have the urn:uuid: prefix", urn)
		}
		if _, err := uuid.Parse(raw); err != nil {
			t.Errorf("%q is not a well-formed UUID: %v", urn, err)
		}
	}
}
