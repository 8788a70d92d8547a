package main

import (
	"flag"
	"fmt"
	"os"

	"go-inventory-billing/internal/config"
	"go-inventory-billing/internal/repository"
	"go-inventory-billing/internal/service"
	"go-inventory-billing/pkg/database"
	applogger "go-inventory-billing/pkg/logger"
)

// clear-data wipes every stock, supplier and bill without going through the API.
// User accounts are kept.
func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	// 1. Load config
	cfg := config.Load()
	log := applogger.New(cfg.Log.Level, cfg.Log.Format)

	// 2. Confirm
	if !*yes {
		fmt.Printf("This deletes all stocks, suppliers, purchases and sales in %s. Type 'yes' to continue: ", cfg.Database.Driver)
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || answer != "yes" {
			fmt.Println("Aborted")
			os.Exit(1)
		}
	}

	// 3. Setup Database
	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect")
	}

	// 4. Clear
	maintenance := service.NewMaintenanceService(repository.NewStore(db), nil, log)
	if err := maintenance.ClearAll(); err != nil {
		log.WithError(err).Fatal("Failed to clear data")
	}

	log.Info("All inventory and billing data cleared")
}
