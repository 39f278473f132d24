package pkg

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"LoginApp/internal/accounts"
	"LoginApp/internal/catalog"
	"LoginApp/internal/config"
	"LoginApp/internal/roster"
	"LoginApp/pkg/middleware"
)

var EchoModules = fx.Module("echo",
	fx.Provide(NewEchoServer),
	fx.Provide(config.NewLogger),
	fx.Provide(config.NewMongoDBConfig),
	fx.Provide(config.NewMongoDBClient),
	fx.Provide(accounts.NewAdminRepository),
	fx.Provide(accounts.NewFacultyRepository),
	fx.Provide(accounts.NewStudentRepository),
	fx.Provide(accounts.NewAdminService),
	fx.Provide(accounts.NewFacultyService),
	fx.Provide(accounts.NewStudentService),
	fx.Provide(accounts.NewAccountHandler),
	fx.Provide(catalog.NewSubjectRepository),
	fx.Provide(catalog.NewSettingsRepository),
	fx.Provide(catalog.NewCatalogService),
	fx.Provide(catalog.NewCatalogHandler),
	fx.Provide(roster.NewImporter),
	fx.Provide(roster.NewUploadHandler),
	fx.Invoke(config.EnsureIndexes),
	fx.Invoke(accounts.RegisterAdminSeed),
	fx.Invoke(RegisterRoutes))

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func NewEchoServer(lc fx.Lifecycle, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}
	middleware.SetupMiddleware(e, logger)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	addr := ":" + port

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
					log.Fatal("Failed to start the server:", err)
				}
			}()
			logger.Info("server running", zap.String("addr", addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("shutting down the server ...")
			return e.Shutdown(ctx)
		},
	})
	return e
}

func RegisterRoutes(e *echo.Echo, accountHandler *accounts.AccountHandler, catalogHandler *catalog.CatalogHandler, uploadHandler *roster.UploadHandler) {
	e.POST("/admin/login", accountHandler.AdminLogin)

	e.POST("/faculty/register", accountHandler.FacultyRegister)
	e.POST("/faculty/login", accountHandler.FacultyLogin)
	e.POST("/faculty/profile", accountHandler.FacultyProfile)
	e.POST("/faculty/preferences", accountHandler.FacultyPreferences)

	e.GET("/admin/pending-faculty", accountHandler.PendingFaculty)
	e.GET("/admin/approved-faculty", accountHandler.ApprovedFaculty)
	e.POST("/admin/approve-faculty", accountHandler.ApproveFaculty)

	e.GET("/subjects", catalogHandler.ListSubjects)
	e.GET("/api/subjects", catalogHandler.ListSubjects)
	e.POST("/api/subjects", catalogHandler.AddSubject)
	e.DELETE("/api/subjects", catalogHandler.DeleteSubject)

	e.POST("/admin/set-preference-deadline", catalogHandler.SetDeadline)
	e.GET("/api/preference-deadline", catalogHandler.GetDeadline)

	e.POST("/student/login", accountHandler.StudentLogin)

	e.POST("/admin/upload-students", uploadHandler.UploadStudents)
}
