package common

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/birmacher/econ-bot/logger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultLogFile = "logs/econ_bot.jsonl"

var settingsFilenames = []string{"econ.bot.yml", "econ.bot.yaml"}

type Settings struct {
	Provider   string `yaml:"provider" validate:"required,oneof=huggingface ollama openai anthropic gemini"`
	Model      string `yaml:"model" validate:"required"`
	BaseURL    string `yaml:"base_url" validate:"omitempty,url"`
	APITimeout int    `yaml:"api_timeout" validate:"gt=0"`
	// HTTPRetries bounds transport-level retries of a single model call
	HTTPRetries int    `yaml:"http_retries" validate:"gte=0,lte=10"`
	LogFile     string `yaml:"log_file" validate:"required"`
	Marks       int    `yaml:"marks" validate:"oneof=2 5 10"`
	// MaxRetries bounds how often a malformed answer is regenerated
	MaxRetries int    `yaml:"max_retries" validate:"gte=0,lte=5"`
	Language   string `yaml:"language"`
	Tone       string `yaml:"tone_instructions"`
	WrapWidth  int    `yaml:"wrap_width" validate:"gte=0"`
}

func WithDefaultSettings() Settings {
	return Settings{
		Provider:    "huggingface",
		Model:       "meta-llama/Llama-3.1-8B-Instruct",
		APITimeout:  60,
		HTTPRetries: 3,
		LogFile:     DefaultLogFile,
		Marks:       5,
		MaxRetries:  2,
		Language:    "en-US",
	}
}

// WithYamlFile starts from the defaults and overlays the first econ.bot.yml
// found in the working directory or below it.
func WithYamlFile() Settings {
	settings := WithDefaultSettings()

	filePath := findSettingsFile(".")
	if filePath == "" {
		logger.Infof("No settings file found in the current directory or subdirectories. Using default settings.")
		return settings
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		logger.Warnf("Failed to read settings file %s: %v", filePath, err)
		return settings
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		logger.Warnf("Failed to parse YAML file %s: %v", filePath, err)
		return WithDefaultSettings()
	}

	logger.Infof("Using settings from YAML file: %s", filePath)
	return settings
}

func findSettingsFile(root string) string {
	for _, name := range settingsFilenames {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found != "" {
			return filepath.SkipAll
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		for _, name := range settingsFilenames {
			if !d.IsDir() && d.Name() == name {
				found = path
				return filepath.SkipAll
			}
		}
		return nil
	})
	return found
}

// WithEnvironment overlays values from a .env file and the process
// environment. A missing .env file is not an error.
func WithEnvironment(settings Settings) Settings {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("Failed to load .env file: %v", err)
	}

	if v := firstEnv("LLM_PROVIDER"); v != "" {
		settings.Provider = strings.ToLower(v)
	}
	if v := firstEnv("LLM_MODEL", "HF_MODEL"); v != "" {
		settings.Model = v
	}
	if v := firstEnv("LLM_BASE_URL"); v != "" {
		settings.BaseURL = v
	}
	if v := firstEnv("ECON_BOT_LOG"); v != "" {
		settings.LogFile = v
	}
	if v := firstEnv("ECON_BOT_MARKS"); v != "" {
		if marks, err := strconv.Atoi(v); err == nil {
			settings.Marks = marks
		} else {
			logger.Warnf("Ignoring ECON_BOT_MARKS=%q: %v", v, err)
		}
	}

	return settings
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	return ""
}

// Validate checks the merged settings before anything is started
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid settings: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid settings: %w", err)
	}
	return nil
}

// RetryConfig builds the HTTP retry configuration for the model clients
func (s Settings) RetryConfig() RetryConfig {
	cfg := DefaultRetryConfig()
	cfg.RetryMax = s.HTTPRetries
	return cfg
}
