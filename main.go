package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/DonkeyXBT/ticketplatform-sub000/cmd/app"
)

// @contact.name   API Support
//
// @license.name  MIT
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
//
// @securityDefinitions.apikey CronSecret
// @in header
// @name X-Cron-Secret
// @description Shared secret for the scheduler-driven endpoints
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
