// Package account implements anonymous sign-in, device activation, and the
// persisted account record (see adept for the wire types these operations
// build on).
package account

import (
	"encoding/base64"
	"io"

	"github.com/ntqbit/adobededrmtools/internal/adept"
	"github.com/ntqbit/adobededrmtools/internal/adeptcrypto"
)

// DeviceInfo is the fixed device identity carried through every signed
// request this client makes after creation: activation and every
// fulfillment.
type DeviceInfo struct {
	SoftwareVersion string `json:"software_version"`
	ClientOS        string `json:"client_os"`
	ClientLocale    string `json:"client_locale"`
	ClientVersion   string `json:"client_version"`
	DeviceType      string `json:"device_type"`
	Fingerprint     string `json:"fingerprint"`
}

// NewDeviceInfo generates a fresh device identity with a random 20-byte
// fingerprint, using the defaults every ADEPT client of this kind reports.
func NewDeviceInfo() (*DeviceInfo, error) {
	fp := make([]byte, 20)
	if _, err := io.ReadFull(adeptcrypto.Rand, fp); err != nil {
		return nil, err
	}
	return &DeviceInfo{
		SoftwareVersion: "10.0.4",
		ClientOS:        "Linux",
		ClientLocale:    "C",
		ClientVersion:   "Desktop",
		DeviceType:      "standalone",
		Fingerprint:     base64.StdEncoding.EncodeToString(fp),
	}, nil
}

// TargetDevice converts to the nested device descriptor embedded in Activate
// requests.
func (d *DeviceInfo) TargetDevice() adept.TargetDevice {
	return adept.TargetDevice{
		SoftwareVersion: d.SoftwareVersion,
		ClientOS:        d.ClientOS,
		ClientLocale:    d.ClientLocale,
		ClientVersion:   d.ClientVersion,
		DeviceType:      d.DeviceType,
		Fingerprint:     d.Fingerprint,
	}
}

// FulfillmentTargetDevice converts to the fulfill-specific nested device
// descriptor, which additionally carries the activation token identifying
// this device to the operator.
func (d *DeviceInfo) FulfillmentTargetDevice(user, device string) adept.FulfillmentTargetDevice {
	return adept.FulfillmentTargetDevice{
		SoftwareVersion: d.SoftwareVersion,
		ClientOS:        d.ClientOS,
		ClientLocale:    d.ClientLocale,
		ClientVersion:   d.ClientVersion,
		DeviceType:      d.DeviceType,
		Fingerprint:     d.Fingerprint,
		ActivationToken: adept.FulfillmentActivationToken{User: user, Device: device},
	}
}
