// Command seed loads the sample fleet into MongoDB. The server seeds
// automatically on an empty database; this exists for resetting a
// development environment by hand.
package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/blackdiamond/coaltrack/internal/config"
	"github.com/blackdiamond/coaltrack/internal/seed"
	"github.com/blackdiamond/coaltrack/internal/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.MongoURI == "" {
		log.Fatal("MONGO_URI is required for seeding")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	st, err := store.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer st.Close(context.Background())

	now := time.Now()
	for _, v := range seed.SampleVehicles(now) {
		if err := st.InsertVehicle(ctx, v); err != nil {
			log.WithError(err).WithField("vehicle_id", v.ID).Fatal("Failed to seed vehicle")
		}
	}
	for _, l := range seed.SampleLocations() {
		if err := st.InsertLocation(ctx, l); err != nil {
			log.WithError(err).WithField("location_id", l.ID).Fatal("Failed to seed location")
		}
	}
	if _, err := st.InsertShipment(ctx, seed.SampleShipment(now)); err != nil {
		log.WithError(err).Fatal("Failed to seed shipment")
	}
	log.Info("Sample data seeded")
}
