package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DonkeyXBT/ticketplatform-sub000/internal/api"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/bot"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/config"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/db"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/logger"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/pkg/cryptohelper"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/repository/dao"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/scheduler"
	"github.com/DonkeyXBT/ticketplatform-sub000/internal/service"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	sealer, err := cryptohelper.NewSealer(conf.API.EncryptionKey)
	if err != nil {
		return fmt.Errorf("failed to initialize sealer -> %w", err)
	}

	fx := service.NewFxService(conf.Fx)

	ticketRepo := repository.NewTicketRepository(dao.NewTicketDAO(postgresDB))
	saleRepo := repository.NewSaleRepository(dao.NewSaleDAO(postgresDB))

	var gateway service.MessagingGateway = bot.NoopGateway{}
	var discord *bot.DiscordGateway
	if conf.Discord.Enabled {
		discord, err = bot.NewDiscordGateway(conf.Discord.BotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize discord gateway -> %w", err)
		}
		gateway = discord
	}

	reminderSvc := service.NewReminderService(ticketRepo, saleRepo, gateway, conf.Reminder)

	if discord != nil {
		if err = discord.Open(reminderSvc); err != nil {
			return fmt.Errorf("failed to open discord gateway -> %w", err)
		}
		defer func() {
			if err := discord.Close(); err != nil {
				zap.L().Warn("failed to close discord gateway", zap.Error(err))
			}
		}()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched, err := scheduler.New(reminderSvc, conf.Reminder.DailyRunAt)
	if err != nil {
		return fmt.Errorf("failed to initialize scheduler -> %w", err)
	}
	go sched.Start(ctx)

	s := api.NewServer(conf, postgresDB, reminderSvc, fx, sealer)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
