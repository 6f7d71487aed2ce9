package seeds

import (
	"context"
	"fmt"

	"masjidku_portal/internals/seeds/finance"
	"masjidku_portal/internals/seeds/tpa"
	user "masjidku_portal/internals/seeds/users/auth"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	Admin user.AdminSeed
	// 0 = tanpa data TPA demo
	DemoStudentsPerClass int
}

func RunAllSeeds(ctx context.Context, db *gorm.DB, opt Options, zl *zap.Logger) error {
	//* User
	if err := user.SeedAdmin(ctx, db, opt.Admin, zl); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	//* Finance
	if err := finance.SeedFunds(ctx, db, zl); err != nil {
		return fmt.Errorf("seed funds: %w", err)
	}

	//* TPA
	if opt.DemoStudentsPerClass > 0 {
		if err := tpa.SeedDemoRoster(ctx, db, opt.DemoStudentsPerClass, zl); err != nil {
			return fmt.Errorf("seed tpa: %w", err)
		}
	}
	return nil
}
