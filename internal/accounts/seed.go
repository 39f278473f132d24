package accounts

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// RegisterAdminSeed creates a default admin account on startup when
// ADMIN_USERNAME and ADMIN_PASSWORD are set. Nothing else creates admins;
// without this a fresh database has no way in.
func RegisterAdminSeed(lc fx.Lifecycle, repo *AdminRepository, logger *zap.Logger) {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			existing, err := repo.FindByUsername(ctx, username)
			if err != nil {
				return err
			}
			if existing != nil {
				return nil
			}

			hash, err := HashPassword(password)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, &Admin{Username: username, PasswordHash: hash}); err != nil {
				return err
			}
			logger.Info("default admin account created", zap.String("username", username))
			return nil
		},
	})
}
