package common

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Dirs DirConfig
	OCR  OCRConfig
	EDI  EDIConfig
}

// DirConfig holds the fixed directory layout for a processing run.
type DirConfig struct {
	BaseDir       string
	InputDir      string
	OutputDir     string
	ExceptionsDir string
	EDIDir        string
	LedgerPath    string
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract     string
	Pdftoppm      string
	TesseractLang string
	TessdataDir   string
	DPI           int
	MaxPages      int
	Timeout       time.Duration
}

// EDIConfig holds the trading-partner identifiers substituted into claim files.
type EDIConfig struct {
	SenderID      string
	ReceiverID    string
	SubmitterName string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	base := getEnv("FORMS_BASE_DIR", defaultBaseDir())
	return &Config{
		Dirs: DirConfig{
			BaseDir:       base,
			InputDir:      getEnv("FORMS_INPUT_DIR", filepath.Join(base, "incoming_forms")),
			OutputDir:     getEnv("FORMS_OUTPUT_DIR", filepath.Join(base, "processed_output")),
			ExceptionsDir: getEnv("FORMS_EXCEPTIONS_DIR", filepath.Join(base, "exceptions")),
			EDIDir:        getEnv("FORMS_EDI_DIR", filepath.Join(base, "edi_output")),
			LedgerPath:    getEnv("FORMS_LEDGER_PATH", filepath.Join(base, "processing_ledger.db")),
		},
		OCR: OCRConfig{
			Tesseract:     getEnv("TESSERACT_BIN", "tesseract"),
			Pdftoppm:      getEnv("PDFTOPPM_BIN", "pdftoppm"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
			TessdataDir:   getEnv("TESSDATA_PREFIX", ""),
			DPI:           getEnvAsInt("OCR_DPI", 300),
			MaxPages:      getEnvAsInt("OCR_MAX_PAGES", 0),
			Timeout:       getEnvAsDuration("OCR_TIMEOUT", 2*time.Minute),
		},
		EDI: EDIConfig{
			SenderID:      getEnv("EDI_SENDER_ID", "SENDERID123"),
			ReceiverID:    getEnv("EDI_RECEIVER_ID", "RECEIVERID456"),
			SubmitterName: getEnv("EDI_SUBMITTER_NAME", "Demo Health Org"),
		},
	}
}

func defaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Documents")
}

// EnsureDirs creates the directory tree used by a processing run.
func (c *Config) EnsureDirs() error {
	dirs := []string{
		c.Dirs.InputDir,
		c.Dirs.OutputDir,
		c.Dirs.ExceptionsDir,
		c.Dirs.EDIDir,
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return WrapError(err, "create directory "+dir)
		}
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Dirs.InputDir == "" {
		return NewAppError("CONFIG_ERROR", "FORMS_INPUT_DIR is required", ErrInvalidInput)
	}
	if c.Dirs.OutputDir == "" {
		return NewAppError("CONFIG_ERROR", "FORMS_OUTPUT_DIR is required", ErrInvalidInput)
	}
	if c.Dirs.ExceptionsDir == "" {
		return NewAppError("CONFIG_ERROR", "FORMS_EXCEPTIONS_DIR is required", ErrInvalidInput)
	}
	if c.Dirs.EDIDir == "" {
		return NewAppError("CONFIG_ERROR", "FORMS_EDI_DIR is required", ErrInvalidInput)
	}
	if c.EDI.SenderID == "" || c.EDI.ReceiverID == "" {
		return NewAppError("CONFIG_ERROR", "EDI sender and receiver IDs are required", ErrInvalidInput)
	}
	return nil
}
