// Package config loads application settings from a YAML file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ukaji3/timetable-go/pkg/timetable"
)

// EnvPrefix prefixes every environment override, e.g. TIMETABLE_SERVER_PORT.
const EnvPrefix = "TIMETABLE"

// Config is the application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Fetch      FetchConfig      `mapstructure:"fetch"`
	Vocabulary VocabularyConfig `mapstructure:"vocabulary"`
	Upload     UploadConfig     `mapstructure:"upload"`
	// Groups lists the known group names. When non-empty, API requests for other
	// groups are rejected.
	Groups []string `mapstructure:"groups"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr returns the listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// Output is "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// FetchConfig configures remote downloads.
type FetchConfig struct {
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
	MaxBytes   int64         `mapstructure:"max_bytes"`
	PageURL    string        `mapstructure:"page_url"`
	Extensions []string      `mapstructure:"extensions"`
}

// VocabularyConfig holds the wording the extractor matches.
type VocabularyConfig struct {
	DayWords          []string `mapstructure:"day_words"`
	TimeWords         []string `mapstructure:"time_words"`
	ClassHourPhrase   string   `mapstructure:"class_hour_phrase"`
	CampusKeyword     string   `mapstructure:"campus_keyword"`
	CampusDigit       string   `mapstructure:"campus_digit"`
	CampusFileKeyword string   `mapstructure:"campus_file_keyword"`
	SkipPrefixes      []string `mapstructure:"skip_prefixes"`
	TeacherPattern    string   `mapstructure:"teacher_pattern"`
	RoomPattern       string   `mapstructure:"room_pattern"`
}

// UploadConfig bounds files accepted by the API.
type UploadConfig struct {
	MinSizeKB  int64    `mapstructure:"min_size_kb"`
	MaxSizeKB  int64    `mapstructure:"max_size_kb"`
	Extensions []string `mapstructure:"extensions"`
}

// Load reads configuration from path, or from config/config.yaml when path is
// empty. Environment variables override the file, which overrides defaults.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := timetable.DefaultVocabulary()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.output", "stderr")

	v.SetDefault("fetch.timeout", "10s")
	v.SetDefault("fetch.user_agent", "")
	v.SetDefault("fetch.max_bytes", 32<<20)
	v.SetDefault("fetch.page_url", "")
	v.SetDefault("fetch.extensions", []string{".xls", ".xlsx"})

	v.SetDefault("vocabulary.day_words", defaults.DayWords)
	v.SetDefault("vocabulary.time_words", defaults.TimeWords)
	v.SetDefault("vocabulary.class_hour_phrase", defaults.ClassHourPhrase)
	v.SetDefault("vocabulary.campus_keyword", defaults.CampusKeyword)
	v.SetDefault("vocabulary.campus_digit", defaults.CampusDigit)
	v.SetDefault("vocabulary.campus_file_keyword", "")
	v.SetDefault("vocabulary.skip_prefixes", []string{})
	v.SetDefault("vocabulary.teacher_pattern", defaults.TeacherPattern)
	v.SetDefault("vocabulary.room_pattern", defaults.RoomPattern)

	v.SetDefault("upload.min_size_kb", 1)
	v.SetDefault("upload.max_size_kb", 10240)
	v.SetDefault("upload.extensions", []string{".xls", ".xlsx"})

	v.SetDefault("groups", []string{})

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid config: server.port must be between 1 and 65535")
	}
	if len(c.Vocabulary.DayWords) == 0 {
		return fmt.Errorf("invalid config: vocabulary.day_words must not be empty")
	}
	if len(c.Vocabulary.TimeWords) == 0 {
		return fmt.Errorf("invalid config: vocabulary.time_words must not be empty")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("invalid config: fetch.timeout must be positive")
	}
	if c.Upload.MinSizeKB < 0 || c.Upload.MaxSizeKB <= 0 || c.Upload.MinSizeKB > c.Upload.MaxSizeKB {
		return fmt.Errorf("invalid config: upload size bounds must satisfy 0 <= min_size_kb <= max_size_kb")
	}
	return nil
}

// ExtractOptions builds extraction options from the vocabulary section.
func (c *Config) ExtractOptions() timetable.Options {
	vc := c.Vocabulary
	return timetable.Options{
		Vocabulary: timetable.Vocabulary{
			DayWords:        vc.DayWords,
			TimeWords:       vc.TimeWords,
			ClassHourPhrase: vc.ClassHourPhrase,
			CampusKeyword:   vc.CampusKeyword,
			CampusDigit:     vc.CampusDigit,
			SkipPrefixes:    vc.SkipPrefixes,
			TeacherPattern:  vc.TeacherPattern,
			RoomPattern:     vc.RoomPattern,
		},
		CampusFileKeyword: vc.CampusFileKeyword,
	}
}
