package models

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

var homeDir = os.UserHomeDir

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type Config struct {
	HistoryFile     string     `mapstructure:"history_file"`
	LogLevel        string     `mapstructure:"log_level"`
	LogFormat       string     `mapstructure:"log_format"`
	DefaultCalories int        `mapstructure:"default_calories"`
	MenuItems       []MenuItem `mapstructure:"menu_items"` // replaces the built-in catalog when set

	// export
	OutputFormat    string             `mapstructure:"output_format"`
	OutputPath      string             `mapstructure:"output_path"`
	OutputFolder    string             `mapstructure:"output_folder"`
	KafkaEnabled    bool               `mapstructure:"kafka_enabled"`
	KafkaBrokerList string             `mapstructure:"kafka_broker_list"`
	KafkaTopic      string             `mapstructure:"kafka_topic"`
	CloudStorage    CloudStorageConfig `mapstructure:"cloud_storage"`
	Database        DatabaseConfig     `mapstructure:"database"`
	ExportTimeout   time.Duration      `mapstructure:"export_timeout"`
}

// SetDefaults registers the default value of every config key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("history_file", DefaultHistoryFile)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("default_calories", 1000)
	v.SetDefault("output_format", OutputFormatConsole)
	v.SetDefault("output_path", ".")
	v.SetDefault("output_folder", "exports")
	v.SetDefault("kafka_enabled", false)
	v.SetDefault("kafka_broker_list", "localhost:9092")
	v.SetDefault("kafka_topic", DefaultOrdersTopic)
	v.SetDefault("cloud_storage.provider", "local")
	v.SetDefault("export_timeout", 30*time.Second)
}

// LoadConfig reads the configuration using Viper. An explicitly named config
// file must exist; the default lookup ($HOME/.nutritrack.yaml, ./.nutritrack.yaml)
// is optional.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".nutritrack")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("NUTRITRACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.HistoryFile) == "" {
		return errors.New("history_file must not be empty")
	}
	switch cfg.OutputFormat {
	case OutputFormatConsole, OutputFormatJSON, OutputFormatCSV,
		OutputFormatParquet, OutputFormatKafka, OutputFormatPostgres:
	default:
		return fmt.Errorf("unsupported output format: %s", cfg.OutputFormat)
	}
	return nil
}
