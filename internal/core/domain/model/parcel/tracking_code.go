package parcel

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"

	"parcelflow/internal/pkg/errs"
)

// trackingCodePattern matches the issued format: "PKL-" followed by
// eight uppercase hexadecimal characters (four random bytes).
var trackingCodePattern = regexp.MustCompile(`^PKL-[0-9A-F]{8}$`)

// TrackingCode is the human-shareable unique identifier issued at booking
// time. It is immutable once issued and is safe to print on labels and share
// with recipients.
type TrackingCode string

// NewTrackingCode issues a new random tracking code.
func NewTrackingCode() (TrackingCode, error) {
	raw := make([]byte, 4)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate tracking code: %w", err)
	}
	return TrackingCode(fmt.Sprintf("PKL-%X", raw)), nil
}

// TrackingCodeFromString parses and validates a tracking code from external
// input, normalizing case before matching.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	code := TrackingCode(strings.ToUpper(strings.TrimSpace(s)))
	if err := code.Validate(); err != nil {
		return "", err
	}
	return code, nil
}

// Validate checks if the tracking code matches the issued format.
func (c TrackingCode) Validate() error {
	if !trackingCodePattern.MatchString(string(c)) {
		return errs.NewValueIsInvalidErrorWithCause("tracking code is invalid",
			fmt.Errorf("%q does not match the issued format", string(c)))
	}
	return nil
}

// String returns the printable representation of the tracking code.
func (c TrackingCode) String() string {
	return string(c)
}
