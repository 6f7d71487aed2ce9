package details

import (
	"masjidku_portal/internals/constants"
	donationRoute "masjidku_portal/internals/features/finance/donations/route"
	donationService "masjidku_portal/internals/features/finance/donations/service"
	fundRoute "masjidku_portal/internals/features/finance/funds/route"
	fundService "masjidku_portal/internals/features/finance/funds/service"
	summaryRoute "masjidku_portal/internals/features/finance/ledger/route"
	summaryService "masjidku_portal/internals/features/finance/ledger/service"
	financeRoute "masjidku_portal/internals/features/finance/transactions/route"
	financeService "masjidku_portal/internals/features/finance/transactions/service"
	siteSettingsRoute "masjidku_portal/internals/features/settings/site_settings/route"
	authMiddleware "masjidku_portal/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
)

func newDonationService(d Deps) *donationService.DonationService {
	return donationService.NewDonationService(d.DB, d.Snap, d.Idem, d.Cache, d.Config.Midtrans.ServerKey, d.Loc, d.Log)
}

// ✅ /api/public/...
func FinancePublicRoutes(public fiber.Router, d Deps) {
	summaryRoute.SummaryRoutes(public,
		summaryService.NewSummaryService(d.DB, d.Cache, d.Config.Finance.CacheTTL, d.Loc, d.Log))
	financeRoute.FinancePublicRoutes(public, financeService.NewFinanceService(d.DB, d.Cache, d.Log), d.Loc)
	fundRoute.FundPublicRoutes(public, fundService.NewFundService(d.DB, d.Cache, d.Log))
	siteSettingsRoute.SiteSettingsPublicRoutes(public, d.DB, d.Cache)
	donationRoute.DonationPublicRoutes(public, newDonationService(d), d.Log)
}

// 🔐 /api/a/finance/... (admin & bendahara) + /api/a/settings/site
func FinanceAdminRoutes(admin fiber.Router, d Deps) {
	finance := admin.Group("/finance",
		authMiddleware.OnlyRolesSlice(constants.RoleErrorTreasurer("keuangan"), constants.FinanceRoles),
	)
	financeRoute.FinanceAdminRoutes(finance, financeService.NewFinanceService(d.DB, d.Cache, d.Log), d.Loc)
	fundRoute.FundAdminRoutes(finance, fundService.NewFundService(d.DB, d.Cache, d.Log))
	donationRoute.DonationAdminRoutes(finance, newDonationService(d), d.Log)

	siteSettingsRoute.SiteSettingsAdminRoutes(admin, d.DB, d.Cache)
}
