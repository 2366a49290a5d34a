// internal/channelsync/policy.go
package channelsync

import (
	"github.com/google/uuid"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// Target is the quantity one channel listing should publish.
type Target struct {
	Provider  models.ChannelProvider `json:"provider"`
	ListingID uuid.UUID              `json:"listing_id"`
	TargetQty int                    `json:"target_qty"`
}

const (
	defaultBuffer     = 1
	defaultMinVisible = 1
)

// ComputeTargets translates an item's central stock into the quantity each
// active listing should display. A nil policy means the defaults apply
// (NORMAL mode, buffer 1, min visible 1).
//
// With stock on hand, NORMAL mode under-publishes by the buffer to absorb
// cross-channel races but never drops below the min-visible floor; that can
// over-publish when stock is very low, which is the accepted tradeoff.
// EXCLUSIVE mode gives the designated channel everything and hides the rest.
func ComputeTargets(centralStock int, policy *models.InventoryPolicy, listings []models.ChannelListing) []Target {
	mode := models.PolicyModeNormal
	buffer := defaultBuffer
	minVisible := defaultMinVisible
	var exclusive *models.ChannelProvider

	if policy != nil {
		mode = policy.Mode
		buffer = policy.Buffer
		minVisible = policy.MinVisible
		exclusive = policy.ExclusiveProvider
	}

	targets := make([]Target, 0, len(listings))
	for _, listing := range listings {
		if !listing.Active {
			continue
		}

		qty := 0
		switch {
		case centralStock <= 0:
			// Never show availability when nothing is on hand.
			qty = 0
		case mode == models.PolicyModeExclusive && exclusive != nil:
			if listing.Provider == *exclusive {
				qty = centralStock
			}
		default:
			// NORMAL, or EXCLUSIVE without a designated channel.
			qty = centralStock - buffer
			if qty < minVisible {
				qty = minVisible
			}
			if qty < 0 {
				qty = 0
			}
		}

		targets = append(targets, Target{
			Provider:  listing.Provider,
			ListingID: listing.ID,
			TargetQty: qty,
		})
	}

	return targets
}
