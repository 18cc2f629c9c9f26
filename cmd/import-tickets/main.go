// Command import-tickets seeds the ticket store from a CSV file.
//
//	import-tickets tickets.csv
//
// The file needs a Numbers column; User ID, Paid and Tx Hash are optional.
package main

import (
	"context"
	"os"
	"time"

	"github.com/ArowuTest/numbers-lottery-backend/internal/config"
	"github.com/ArowuTest/numbers-lottery-backend/internal/database"
	"github.com/ArowuTest/numbers-lottery-backend/internal/logging"
	"github.com/ArowuTest/numbers-lottery-backend/internal/services"
	"github.com/ArowuTest/numbers-lottery-backend/internal/utils"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info(".env file not found, using environment variables")
	}
	if len(os.Args) < 2 {
		logrus.Fatal("CSV file path is required as a command line argument")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, closeStore, err := database.Open(ctx, cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open store")
	}
	defer closeStore(context.Background())

	// No viewers are connected to an offline import; the jackpot is published
	// on the next live purchase or connection.
	tickets := services.NewTicketService(store.Tickets, services.OfflineJackpot{}, cfg.Lottery.NumberRange, cfg.Lottery.PickCount, log)

	file, err := os.Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("Failed to open CSV file")
	}
	defer file.Close()

	result, err := utils.NewCSVImporter(tickets).ImportTickets(ctx, file)
	if err != nil {
		log.WithError(err).Fatal("Failed to import tickets")
	}
	for _, msg := range result.Errors {
		log.Warn(msg)
	}
	log.WithFields(logrus.Fields{
		"rows":    result.TotalRows,
		"created": result.TicketsCreated,
		"errors":  len(result.Errors),
	}).Info("Tickets imported")
}
