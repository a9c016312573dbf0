package relay

import (
	"github.com/checkinhq/checkin-backend-go/internal/pkg/erp"
)

// MatchProfile finds the HR profile for a local punch identifier.
//
// The two systems share no reliable key, so each profile exposes an ordered
// list of candidate identifier fields (primary user id first, document name
// last) and the first profile with any candidate equal to the identifier
// wins. Profiles are scanned in directory order; this is first-found, not
// best-match. Returns nil when nothing satisfies.
func MatchProfile(identifier string, profiles []erp.EmployeeProfile) *erp.EmployeeProfile {
	if identifier == "" {
		return nil
	}
	for i := range profiles {
		for _, candidate := range profiles[i].CandidateIdentifiers() {
			if candidate == identifier {
				return &profiles[i]
			}
		}
	}
	return nil
}
