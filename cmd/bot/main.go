package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Spok95/university-assistant-bot/internal/app"
	"github.com/Spok95/university-assistant-bot/internal/assistant"
	"github.com/Spok95/university-assistant-bot/internal/config"
	"github.com/Spok95/university-assistant-bot/internal/data"
	"github.com/Spok95/university-assistant-bot/internal/db"
	"github.com/Spok95/university-assistant-bot/internal/jobs"
	"github.com/Spok95/university-assistant-bot/internal/logging"
	"github.com/Spok95/university-assistant-bot/internal/observability"
	"github.com/Spok95/university-assistant-bot/internal/webapi"
)

// задаётся при сборке: -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Загрузка переменных окружения
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	lg, err := logging.Init(cfg.LogLevel, cfg.Env)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer lg.Closer()
	log := lg.Base

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.Env, version)
	if err != nil {
		log.Warn("sentry init failed", zap.Error(err))
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close() }()
	if err := db.Migrate(ctx, database.DB); err != nil {
		return fmt.Errorf("миграция не удалась: %w", err)
	}

	store, err := data.NewStore(ctx, data.Loader{Files: cfg.Files, Log: log}.Load, log)
	if err != nil {
		return fmt.Errorf("загрузка данных: %w", err)
	}

	var gen assistant.Generator
	if cfg.LLMAPIKey != "" {
		g, err := assistant.NewGeminiGenerator(ctx, cfg.LLMAPIKey, cfg.LLMModel)
		if err != nil {
			log.Warn("language model unavailable, using fallback answers", zap.Error(err))
		} else {
			gen = g
		}
	}
	resp := assistant.NewResponder(gen, cfg.LLMTimeout, log)

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return fmt.Errorf("ошибка запуска бота: %w", err)
	}
	log.Info("bot started", zap.String("username", bot.Self.UserName), zap.String("version", version))

	api := webapi.NewServer(webapi.Deps{
		Data:        store,
		Assistant:   resp,
		DB:          database,
		Log:         log.Named("api"),
		Location:    cfg.Location,
		CORSOrigins: cfg.CORSOrigins,
	}).Router()
	httpSrv := app.StartHTTP(ctx, cfg.HTTPAddr, database.DB, api, lg.LevelHandler(), log.Named("http"))

	if cfg.ReloadInterval > 0 {
		notifier := app.NewReloadNotifier(bot, database, cfg.AdminIDs, log)
		jobs.New(ctx, log.Named("jobs")).Every(cfg.ReloadInterval, "data_reload", notifier.Job(store))
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := store.Reload(ctx); err != nil {
					log.Error("reload on SIGHUP failed", zap.Error(err))
				}
			}
		}
	}()

	d := app.NewDispatcher(bot, database, store, resp, cfg, log.Named("bot"))

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := bot.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			bot.StopReceivingUpdates()
			httpSrv.Wait()
			log.Info("shutdown complete")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			go d.HandleUpdate(ctx, upd)
		}
	}
}
