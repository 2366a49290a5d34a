// internal/channelsync/adapters.go
package channelsync

import (
	"github.com/sirupsen/logrus"

	"github.com/Jiu-020812/orange-fanta-back/internal/models"
)

// The per-channel adapters are stubs standing in for the real channel
// APIs. They log the requested update and report success; swapping one for
// a real client only has to honor the Adapter contract.

type stubAdapter struct {
	provider models.ChannelProvider
}

func (a *stubAdapter) Provider() models.ChannelProvider {
	return a.provider
}

func (a *stubAdapter) UpdateStock(update StockUpdate) (UpdateResult, error) {
	logrus.WithFields(logrus.Fields{
		"provider":            a.provider,
		"external_product_id": update.Listing.ExternalProductID,
		"external_option_id":  update.Listing.ExternalOptionID,
		"target_qty":          update.TargetQty,
	}).Info("Channel stock update")

	return UpdateResult{OK: true}, nil
}

func newNaverAdapter() Adapter    { return &stubAdapter{provider: models.ProviderNaver} }
func newCoupangAdapter() Adapter  { return &stubAdapter{provider: models.ProviderCoupang} }
func newElevenstAdapter() Adapter { return &stubAdapter{provider: models.ProviderElevenst} }
func newKreamAdapter() Adapter    { return &stubAdapter{provider: models.ProviderKream} }

// genericAdapter handles ETC and any unrecognized provider tag.
func newGenericAdapter() Adapter { return &stubAdapter{provider: models.ProviderEtc} }
