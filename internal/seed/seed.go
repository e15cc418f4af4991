// Package seed loads the partner reference catalog, and optionally a demo
// member, into an empty store at startup bootstrap.
package seed

import (
	"github.com/bodega1738/SubiclifeClone-sub000/internal/config"
	memberdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/member/domain"
	partnerdomain "github.com/bodega1738/SubiclifeClone-sub000/internal/partner/domain"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/query"
	"github.com/bodega1738/SubiclifeClone-sub000/internal/store"
	"github.com/gosimple/slug"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type seedPartner struct {
	name           string
	category       partnerdomain.Category
	discountPct    float64
	eliteDiscount  float64
	commissionRate float64
	offers         []string
}

var partnerCatalog = []seedPartner{
	{
		name:           "Lighthouse Marina Resort",
		category:       partnerdomain.CategoryHotel,
		discountPct:    15,
		eliteDiscount:  30,
		commissionRate: 0.12,
		offers:         []string{"Deluxe Room", "Suite", "Bayview Villa"},
	},
	{
		name:          "The Coffee Shop Subic",
		category:      partnerdomain.CategoryDining,
		discountPct:   10,
		eliteDiscount: 20,
		offers:        []string{"Breakfast Buffet", "Dinner for Two"},
	},
	{
		name:           "Ocean Adventure",
		category:       partnerdomain.CategoryActivity,
		discountPct:    12,
		commissionRate: 0.08,
		offers:         []string{"Dolphin Encounter", "Park Day Pass"},
	},
	{
		name:          "Networx Jetsports",
		category:      partnerdomain.CategoryWaterSports,
		discountPct:   10,
		eliteDiscount: 25,
		offers:        []string{"Jetski Hour", "Yacht Charter"},
	},
	{
		name:        "Subic Bay Concierge",
		category:    partnerdomain.CategoryService,
		discountPct: 5,
		offers:      []string{"Airport Transfer", "Errand Run"},
	},
}

// Run seeds reference data when the partner table is empty, so restarts with
// a rehydrated snapshot never duplicate the catalog.
func Run(cfg config.Config, db *query.Client, log *zap.Logger) error {
	log = log.Named("seed")

	existing, err := db.From(store.TablePartners).Limit(1).Rows()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Debug("partner catalog already present, skipping seed")
		return nil
	}

	for _, p := range partnerCatalog {
		partner := partnerdomain.Partner{
			Name:             p.name,
			Slug:             slug.Make(p.name),
			Category:         p.category,
			DiscountPct:      p.discountPct,
			EliteDiscountPct: p.eliteDiscount,
			CommissionRate:   p.commissionRate,
			Offers:           p.offers,
		}
		row, err := query.Encode(partner)
		if err != nil {
			return err
		}
		delete(row, "id")
		delete(row, "created_at")
		db.From(store.TablePartners).Insert(row)
	}
	log.Info("partner catalog seeded", zap.Int("partners", len(partnerCatalog)))

	if cfg.SeedDemoData {
		demo := memberdomain.User{
			Name:              "Demo Member",
			Email:             "demo@subic.life",
			Tier:              memberdomain.TierStarter,
			InsuranceCoverage: memberdomain.InsuranceForTier(memberdomain.TierStarter),
		}
		row, err := query.Encode(demo)
		if err != nil {
			return err
		}
		delete(row, "id")
		delete(row, "created_at")
		db.From(store.TableUsers).Insert(row)
		log.Info("demo member seeded", zap.String("email", demo.Email))
	}

	return nil
}

// Module runs seeding during application start.
var Module = fx.Module("seed",
	fx.Invoke(Run),
)
