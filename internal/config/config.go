package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Files: пути к исходным таблицам.
type Files struct {
	Reg             string
	Timetable       string
	Bachelor        string
	Magistratura    string
	Doctorantura    string
	KlimovTest      string
	Recommendations string
}

type Config struct {
	BotToken    string
	DatabaseURL string
	AdminIDs    []int64
	Location    *time.Location
	HTTPAddr    string
	LogLevel    string
	Env         string // dev|prod
	SentryDSN   string

	DataDir   string
	Files     Files
	WebAppURL string

	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// 0: периодическая перезагрузка данных выключена
	ReloadInterval time.Duration
	CORSOrigins    []string
}

func Load() (*Config, error) {
	tz := getenv("TZ", "Asia/Almaty")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.Local
	}

	adminIDs, err := parseIDs(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("ADMIN_IDS: %w", err)
	}
	llmTimeout, err := parseDuration("LLM_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	reload, err := parseDuration("RELOAD_INTERVAL", 0)
	if err != nil {
		return nil, err
	}

	dataDir := getenv("DATA_DIR", "./data")
	inData := func(env, name string) string { return getenv(env, filepath.Join(dataDir, name)) }

	cfg := &Config{
		BotToken:    mustEnv("BOT_TOKEN"),
		DatabaseURL: mustEnv("DATABASE_URL"),
		AdminIDs:    adminIDs,
		Location:    loc,
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		Env:         getenv("ENV", "dev"),
		SentryDSN:   os.Getenv("SENTRY_DSN"),
		DataDir:     dataDir,
		Files: Files{
			Reg:             inData("REG_FILE", "reg.xlsx"),
			Timetable:       inData("TIMETABLE_FILE", "timetable.xlsx"),
			Bachelor:        inData("BACHELOR_FILE", "bachelor.csv"),
			Magistratura:    inData("MAGISTRATURA_FILE", "magistratura.csv"),
			Doctorantura:    inData("DOCTORANTURA_FILE", "doctorantura.csv"),
			KlimovTest:      inData("TEST_KLIMOVA_FILE", "test_klimova.csv"),
			Recommendations: inData("RECOMMENDATIONS_KLIMOV_FILE", "recomendations_klimov.csv"),
		},
		WebAppURL:      os.Getenv("WEBAPP_URL"),
		LLMAPIKey:      os.Getenv("LLM_API_KEY"),
		LLMModel:       getenv("LLM_MODEL", "gemini-2.0-flash"),
		LLMTimeout:     llmTimeout,
		ReloadInterval: reload,
		CORSOrigins:    parseList(os.Getenv("CORS_ORIGINS")),
	}
	return cfg, nil
}

func (c *Config) IsAdmin(chatID int64) bool {
	for _, id := range c.AdminIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(k string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", k, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", k, d)
	}
	return d, nil
}

func parseList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseIDs(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q: %w", p, err)
		}
		out = append(out, n)
	}
	return out, nil
}
