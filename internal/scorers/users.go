package scorers

import (
	"context"
	"fmt"
	"slices"

	"github.com/wardenproj/warden/internal/logger"
	"github.com/wardenproj/warden/internal/scoring"
)

// Users scores account existence, account identity, and admin
// membership. The identity check catches accounts that were deleted and
// re-created: the fresh system id differs from the one recorded at
// generation time, so the original account counts as removed. Identity
// and privilege are evaluated independently.
func Users(ctx context.Context, eng *scoring.Engine, src AccountSource, log *logger.Logger) {
	if len(eng.Resources.Users) == 0 {
		return
	}

	log.Debug("scoring users")

	ids, admins, err := src.Accounts(ctx)
	if err != nil {
		log.Error(err, "could not enumerate accounts, skipping user scoring this cycle")
		return
	}
	if len(ids) == 0 {
		log.Warn("no accounts enumerated on the system, skipping user scoring this cycle")
		return
	}

	for i := range eng.Resources.Users {
		user := &eng.Resources.Users[i]
		liveID, present := ids[user.Name]

		if !present {
			message := fmt.Sprintf("User '%s' has been removed.", user.Name)
			if user.Allowed {
				eng.RemovePoints(&user.Item, message)
			} else {
				eng.AwardPoints(&user.Item, message)
			}
			continue
		}

		if user.Allowed && liveID != user.AccountID {
			eng.RemovePoints(&user.Item, fmt.Sprintf("User '%s' has been removed.", user.Name))
		}
		if !user.Allowed && liveID != user.AccountID {
			eng.RemovePoints(&user.Item, fmt.Sprintf("User '%s' has been created.", user.Name))
		}

		if !user.Allowed {
			continue
		}

		liveAdmin := slices.Contains(admins, user.Name)
		message := fmt.Sprintf("User '%s' is not an administrator.", user.Name)
		if liveAdmin {
			message = fmt.Sprintf("User '%s' is now an administrator.", user.Name)
		}

		switch toggle(user.AdminAtStart, user.Admin, liveAdmin) {
		case award:
			eng.AwardPoints(&user.Item, message)
		case remove:
			eng.RemovePoints(&user.Item, message)
		}
	}
}
