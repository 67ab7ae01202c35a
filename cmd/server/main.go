package main

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/gymunity/backend/auth"
	"github.com/gymunity/backend/news"
	"github.com/gymunity/backend/server"
	"github.com/gymunity/backend/utils"
	"github.com/gymunity/backend/utils/dotenv"
	. "github.com/gymunity/backend/utils/log"
)

const defaultFetchIntervalMinutes = 30

func main() {
	flag.Parse()

	if err := dotenv.LoadDotEnvs(); err != nil {
		Log.Fatal("failed to load env: ", err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("failed to connect to database: ", err)
	}

	utils.DatabaseSetupAndMigration(db)

	if seeded, err := news.SeedSources(db); err != nil {
		Log.Fatal("failed to seed sources: ", err)
	} else if seeded > 0 {
		Log.Info("seeded ", seeded, " default sources")
	}
	if seeded, err := news.SeedMockArticles(db); err != nil {
		Log.Fatal("failed to seed articles: ", err)
	} else if seeded > 0 {
		Log.Info("seeded ", seeded, " demo articles")
	}

	newsService := news.NewService(db)

	if os.Getenv("NEWS_PIPELINE_ENABLED") == "true" {
		interval := defaultFetchIntervalMinutes
		if raw := os.Getenv("NEWS_PIPELINE_INTERVAL_MINUTES"); raw != "" {
			if minutes, err := strconv.Atoi(raw); err == nil && minutes > 0 {
				interval = minutes
			}
		}
		stop := newsService.StartFetchTimer(time.Duration(interval) * time.Minute)
		defer stop()
		Log.Info("fetch timer started, interval ", interval, " minutes")
	}

	srv := server.New(db, newsService, auth.ConfigFromEnv())
	if err := srv.Router().Run(":8080"); err != nil {
		Log.Fatal("server exited: ", err)
	}
}
