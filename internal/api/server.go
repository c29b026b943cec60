package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/DonkeyXBT/ticketplatform-sub000/docs"
	v1 "github.com/DonkeyXBT/ticketplatform-sub000/internal/api/handler/v1"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api/middleware"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/pkg/cryptohelper"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository/dao"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, reminderSvc *service.ReminderService, fx *service.FxService, sealer *cryptohelper.Sealer) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	ticketHandler := s.initTicketHandler(db)
	saleHandler := s.initSaleHandler(db, fx)
	accountHandler := s.initAccountHandler(db, sealer)
	reminderHandler := v1.NewReminderHandler(reminderSvc)
	s.MountHandlers(authHandler, userHandler, ticketHandler, saleHandler, accountHandler, reminderHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initTicketHandler(db *gorm.DB) *v1.TicketHandler {
	ticketDAO := dao.NewTicketDAO(db)
	repo := repository.NewTicketRepository(ticketDAO)
	svc := service.NewTicketService(repo)
	handler := v1.NewTicketHandler(svc)

	return handler
}

func (s *Server) initSaleHandler(db *gorm.DB, fx *service.FxService) *v1.SaleHandler {
	saleRepo := repository.NewSaleRepository(dao.NewSaleDAO(db))
	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(db))
	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	svc := service.NewSaleService(saleRepo, ticketRepo, userRepo, fx)
	handler := v1.NewSaleHandler(svc)

	return handler
}

func (s *Server) initAccountHandler(db *gorm.DB, sealer *cryptohelper.Sealer) *v1.AccountHandler {
	accountDAO := dao.NewPlatformAccountDAO(db)
	repo := repository.NewPlatformAccountRepository(accountDAO)
	svc := service.NewAccountService(repo, sealer)
	handler := v1.NewAccountHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	ticketHandler *v1.TicketHandler,
	saleHandler *v1.SaleHandler,
	accountHandler *v1.AccountHandler,
	reminderHandler *v1.ReminderHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authed := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authed.GET("/users/me", userHandler.HandleGetMe)
		authed.PUT("/users/me", userHandler.HandleUpdateMe)

		authed.GET("/tickets", ticketHandler.HandleListTickets)
		authed.POST("/tickets", ticketHandler.HandleCreateTicket)
		authed.GET("/tickets/:ticketID", ticketHandler.HandleGetTicket)
		authed.PUT("/tickets/:ticketID", ticketHandler.HandleUpdateTicket)
		authed.DELETE("/tickets/:ticketID", ticketHandler.HandleDeleteTicket)

		authed.GET("/tickets/:ticketID/sales", saleHandler.HandleListSales)
		authed.POST("/tickets/:ticketID/sales", saleHandler.HandleCreateSale)
		authed.PUT("/sales/:saleID", saleHandler.HandleUpdateSale)
		authed.DELETE("/sales/:saleID", saleHandler.HandleDeleteSale)

		authed.GET("/accounts", accountHandler.HandleListAccounts)
		authed.POST("/accounts", accountHandler.HandleCreateAccount)
		authed.GET("/accounts/:accountID", accountHandler.HandleGetAccount)
		authed.PUT("/accounts/:accountID", accountHandler.HandleUpdateAccount)
		authed.DELETE("/accounts/:accountID", accountHandler.HandleDeleteAccount)
	}

	cron := s.Router.Group(basePath+"/cron", middleware.RequireCronSecret(s.Config.API.CronSecret))
	{
		cron.POST("/reminders/run", reminderHandler.HandleRunReminders)
		cron.GET("/reminders/eligible", reminderHandler.HandleListEligible)
		cron.POST("/reminders/sent", reminderHandler.HandleRecordSent)
	}

	// Acknowledgement carries the actor's Discord handle and is verified
	// against the ticket owner, so it stays outside the JWT group.
	s.Router.POST(basePath+"/reminders/ack", reminderHandler.HandleAcknowledge)

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Ticket Platform API"
	docs.SwaggerInfo.Description = "Inventory and sales tracking for ticket resellers."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
