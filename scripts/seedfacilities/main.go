// Command seedfacilities installs the default facility catalogue when the
// table is empty. With -reset it replaces whatever is there.
package main

import (
	"context"
	"flag"
	"hostel-server/config"
	"hostel-server/services"
	"hostel-server/storage"

	"github.com/kataras/golog"
)

func main() {
	reset := flag.Bool("reset", false, "replace existing facilities with the defaults")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		golog.Fatalf("loading config: %v", err)
	}
	db, err := storage.InitializeDB(cfg.DatabaseURL)
	if err != nil {
		golog.Fatal(err)
	}
	defer storage.CloseDB(db)

	seeded, err := services.NewFacilityService(storage.NewFacilityStore(db)).SeedDefaults(context.Background(), *reset)
	if err != nil {
		golog.Fatalf("seed failed: %v", err)
	}
	if seeded {
		golog.Info("facilities seed complete")
	} else {
		golog.Info("facilities already present, skipping")
	}
}
