package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	pkg "github.com/classpulse/classpulse/pkg/internal"
	"github.com/classpulse/classpulse/pkg/internal/cache"
	"github.com/classpulse/classpulse/pkg/internal/database"
	"github.com/classpulse/classpulse/pkg/internal/http"
	"github.com/classpulse/classpulse/pkg/internal/http/api"
	"github.com/classpulse/classpulse/pkg/internal/http/ws"
	"github.com/classpulse/classpulse/pkg/internal/insight"
	"github.com/classpulse/classpulse/pkg/internal/services"
	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString("  ____ _               ____        _\n / ___| | __ _ ___ ___|  _ \\ _   _| |___  ___\n| |   | |/ _` / __/ __| |_) | | | | / __|/ _ \\\n| |___| | (_| \\__ \\__ \\  __/| |_| | \\__ \\  __/\n \\____|_|\\__,_|___/___/_|    \\__,_|_|___/\\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("ClassPulse"), pkg.AppVersion)
	fmt.Printf("The classroom polling service for empathy classes\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	_ = godotenv.Load()
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")
	viper.SetDefault("bind", ":8445")
	viper.SetDefault("database.sqlite_path", "classpulse.db")
	viper.SetDefault("generation.openai_model", "gpt-4o-mini")
	viper.SetDefault("generation.gemini_model", "gemini-2.5-flash-lite")
	_ = viper.BindEnv("database.dsn", "DATABASE_URL")
	_ = viper.BindEnv("generation.openai_key", "OPENAI_API_KEY")
	_ = viper.BindEnv("generation.gemini_key", "GEMINI_API_KEY")
	_ = viper.BindEnv("bind", "BIND_ADDR")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("No settings file found, using defaults and environment...")
	}

	// Connect to database
	db, err := database.NewSource()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Build up dependencies
	cacheStore, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when creating cache store.")
	}
	svc := services.New(db, cacheStore)

	agent, err := insight.NewAgent(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when creating generation agent.")
	}

	hub := ws.NewHub()

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", svc.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	server := http.NewServer(api.New(svc, agent, hub, http.NewSessionStore()))
	go server.Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
