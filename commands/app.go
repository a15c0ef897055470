package commands

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/engrsakib/qa-with-go/config"
	"github.com/engrsakib/qa-with-go/events"
	"github.com/engrsakib/qa-with-go/mailer"
	"github.com/engrsakib/qa-with-go/services"
	"github.com/engrsakib/qa-with-go/store"
	"github.com/engrsakib/qa-with-go/store/memstore"
	"github.com/engrsakib/qa-with-go/store/mongostore"
	"github.com/joho/godotenv"
)

func loadConfig() (config.Config, error) {
	if envFile != "" {
		if err := godotenv.Overload(envFile); err != nil {
			return config.Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	if storeKind != "" {
		// Flags win over the environment.
		if err := os.Setenv("STORE", storeKind); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

// openStore returns the configured store and a function releasing it.
func openStore(ctx context.Context, cfg config.Config) (store.Store, func(), error) {
	if cfg.Store == config.StoreMemory {
		log.Println("store: using in-memory store, data is lost on exit")
		return memstore.New(), func() {}, nil
	}

	db, err := config.ConnectDB(ctx, cfg.MongoURI, cfg.DBName)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("store: disconnect: %v", err)
		}
	}

	st := mongostore.New(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		closeDB()
		return nil, nil, err
	}
	return st, closeDB, nil
}

func newMailer(cfg config.Config) services.Mailer {
	if !cfg.MailEnabled() {
		return mailer.Nop{}
	}
	return mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPEmail, cfg.SMTPPassword)
}

// newService builds the service for one-off commands. Nothing is listening,
// so events are dropped.
func newService(st store.Store, cfg config.Config) *services.Service {
	return services.New(st, events.Nop{}, services.WithMailer(newMailer(cfg)))
}
