package lists

import (
	"fmt"

	apperrors "github.com/ipgroup-updater/frontdoor-ipgroup-updater/src/internal/errors"
)

// ValidateV4Count fails unless the set holds more than minimum IPv4 prefixes.
// It guards the IP group against truncated or corrupted upstream data.
func ValidateV4Count(set *ClassifiedPrefixSet, minimum int) error {
	count := 0
	if set != nil {
		count = len(set.V4)
	}

	if count <= minimum {
		return apperrors.NewThresholdError(
			fmt.Sprintf("less than %d IPv4 networks detected (got %d)", minimum, count)).
			WithDetail("minimum", fmt.Sprint(minimum)).
			WithDetail("count", fmt.Sprint(count))
	}

	return nil
}
