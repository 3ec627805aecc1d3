package payments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The external reference carried on every premium purchase is a versioned
// contract between this package and the webhook: whatever creates the
// preference must produce exactly the shape the webhook parses. Format:
//
//	candyweb-premium-<userID>-<unix millis>
//
// User IDs are numeric, so the hyphen-delimited format stays unambiguous. A
// reference whose ID segment is not purely numeric is rejected outright
// rather than guessed at, so a malformed or foreign reference can never
// attribute premium to the wrong user.
const premiumReferencePrefix = "candyweb-premium"

// ErrInvalidReference is returned when an external reference does not match
// the candyweb-premium-<userID>-<timestamp> contract.
var ErrInvalidReference = errors.New("payments: invalid external reference")

// FormatPremiumReference builds the external reference for a premium
// purchase preference.
func FormatPremiumReference(userID uint, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d", premiumReferencePrefix, userID, now.UnixMilli())
}

// ParsePremiumReference extracts the user ID from an external reference.
func ParsePremiumReference(reference string) (uint, error) {
	rest, ok := strings.CutPrefix(reference, premiumReferencePrefix+"-")
	if !ok {
		return 0, ErrInvalidReference
	}

	parts := strings.Split(rest, "-")
	if len(parts) != 2 {
		return 0, ErrInvalidReference
	}

	userID, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidReference
	}
	if _, err := strconv.ParseInt(parts[1], 10, 64); err != nil {
		return 0, ErrInvalidReference
	}

	return uint(userID), nil
}
