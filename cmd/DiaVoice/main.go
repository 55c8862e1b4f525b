package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/diavoice/DiaVoice/internal/api"
	"github.com/diavoice/DiaVoice/internal/classifier"
	"github.com/diavoice/DiaVoice/internal/notify"
	"github.com/diavoice/DiaVoice/internal/store"
	"github.com/diavoice/DiaVoice/internal/transcribe"
	"github.com/joho/godotenv"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for DiaVoice state data
	DefaultStateDir = "/var/lib/diavoice"
	// DefaultDBFileName is the default SQLite database filename
	DefaultDBFileName = "diavoice.db"
)

func main() {
	// Initialize structured logger
	initializeLogger()

	// Load environment configuration
	config := loadEnvironmentConfig()

	// Parse command line flags
	flags := parseCommandLineFlags(config)

	// Build module options
	storeOpts := buildStoreOptions(flags)
	trOpts := buildTranscribeOptions(flags)
	clOpts := buildClassifierOptions(flags)
	nfOpts := buildNotifyOptions(flags)
	apiOpts := buildAPIOptions(flags)

	// Start the service
	slog.Info("Bootstrapping DiaVoice with configured modules")
	slog.Debug("Module options counts", "store", len(storeOpts), "transcribe", len(trOpts), "classifier", len(clOpts), "notify", len(nfOpts), "api", len(apiOpts))
	slog.Debug("Final configuration", "dsn_set", *flags.dbDSN != "", "model_url", *flags.modelURL, "api_addr", *flags.apiAddr)
	if err := api.Run(storeOpts, trOpts, clOpts, nfOpts, apiOpts); err != nil {
		slog.Error("DiaVoice failed to run", "error", err)
		os.Exit(1)
	}
	slog.Info("DiaVoice exited successfully")
}

// Config holds environment configuration
type Config struct {
	DatabaseURL string
	StateDir    string
	OpenAIKey   string
	ModelURL    string
	TwilioSID   string
	TwilioToken string
	TwilioFrom  string
	APIAddr     string
}

// Flags holds command line flag values
type Flags struct {
	dbDSN       *string
	openaiKey   *string
	modelURL    *string
	twilioSID   *string
	twilioToken *string
	twilioFrom  *string
	apiAddr     *string
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StateDir:    os.Getenv("DIAVOICE_STATE_DIR"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		ModelURL:    os.Getenv("MODEL_URL"),
		TwilioSID:   os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioToken: os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:  os.Getenv("TWILIO_FROM_NUMBER"),
		APIAddr:     os.Getenv("API_ADDR"),
	}

	// Set default state directory if not specified
	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No DIAVOICE_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	} else {
		slog.Debug("DIAVOICE_STATE_DIR found in environment", "state_dir", config.StateDir)
	}

	// If no database URL is provided, default to SQLite in the state directory
	if config.DatabaseURL == "" {
		config.DatabaseURL = filepath.Join(config.StateDir, DefaultDBFileName)
		slog.Debug("No database DSN provided, defaulting to SQLite", "sqlite_path", config.DatabaseURL)
	}

	slog.Debug("environment variables loaded",
		"DATABASE_URL_SET", config.DatabaseURL != "",
		"DIAVOICE_STATE_DIR", config.StateDir,
		"OPENAI_API_KEY_SET", config.OpenAIKey != "",
		"MODEL_URL", config.ModelURL,
		"TWILIO_ACCOUNT_SID_SET", config.TwilioSID != "",
		"TWILIO_AUTH_TOKEN_SET", config.TwilioToken != "",
		"TWILIO_FROM_NUMBER_SET", config.TwilioFrom != "",
		"API_ADDR", config.APIAddr)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		dbDSN:       flag.String("db-dsn", config.DatabaseURL, "session store DSN: SQLite file path or postgres:// URL (overrides $DATABASE_URL)"),
		openaiKey:   flag.String("openai-api-key", config.OpenAIKey, "OpenAI API key for voice transcription (overrides $OPENAI_API_KEY)"),
		modelURL:    flag.String("model-url", config.ModelURL, "base URL of the risk model service (overrides $MODEL_URL)"),
		twilioSID:   flag.String("twilio-account-sid", config.TwilioSID, "Twilio account SID for SMS delivery (overrides $TWILIO_ACCOUNT_SID)"),
		twilioToken: flag.String("twilio-auth-token", config.TwilioToken, "Twilio auth token (overrides $TWILIO_AUTH_TOKEN)"),
		twilioFrom:  flag.String("twilio-from", config.TwilioFrom, "Twilio sending phone number (overrides $TWILIO_FROM_NUMBER)"),
		apiAddr:     flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"dbDSN_set", *flags.dbDSN != "",
		"openaiKeySet", *flags.openaiKey != "",
		"modelURL", *flags.modelURL,
		"twilioSIDSet", *flags.twilioSID != "",
		"apiAddr", *flags.apiAddr)

	// Ensure the state directory exists for file-based storage
	if *flags.dbDSN != "" && !strings.HasPrefix(*flags.dbDSN, "postgres://") && !strings.HasPrefix(*flags.dbDSN, "postgresql://") {
		stateDir := filepath.Dir(*flags.dbDSN)
		slog.Debug("Creating state directory for file-based database", "state_dir", stateDir)
		if err := os.MkdirAll(stateDir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "state_dir", stateDir)
			os.Exit(1)
		}
	}

	return flags
}

// buildStoreOptions constructs session store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.dbDSN != "" {
		storeOpts = append(storeOpts, store.WithDSN(*flags.dbDSN))
	} else {
		slog.Debug("No database DSN provided, will use in-memory store")
	}
	return storeOpts
}

// buildTranscribeOptions constructs transcription configuration options
func buildTranscribeOptions(flags Flags) []transcribe.Option {
	var trOpts []transcribe.Option
	if *flags.openaiKey != "" {
		trOpts = append(trOpts, transcribe.WithAPIKey(*flags.openaiKey))
	}
	return trOpts
}

// buildClassifierOptions constructs risk model client configuration options
func buildClassifierOptions(flags Flags) []classifier.Option {
	var clOpts []classifier.Option
	if *flags.modelURL != "" {
		clOpts = append(clOpts, classifier.WithBaseURL(*flags.modelURL))
	}
	return clOpts
}

// buildNotifyOptions constructs SMS delivery configuration options
func buildNotifyOptions(flags Flags) []notify.Option {
	var nfOpts []notify.Option
	if *flags.twilioSID != "" {
		nfOpts = append(nfOpts, notify.WithAccountSID(*flags.twilioSID))
	}
	if *flags.twilioToken != "" {
		nfOpts = append(nfOpts, notify.WithAuthToken(*flags.twilioToken))
	}
	if *flags.twilioFrom != "" {
		nfOpts = append(nfOpts, notify.WithFromNumber(*flags.twilioFrom))
	}
	return nfOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	return apiOpts
}
