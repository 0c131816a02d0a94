package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Service struct {
	URL string `mapstructure:"url"`
}
type Services struct {
	Coref          Service `mapstructure:"coref"`
	NER            Service `mapstructure:"ner"`
	Dialogues      Service `mapstructure:"dialogues"`
	Visualization  Service `mapstructure:"visualization"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds"`
}
type Corpus struct {
	Path            string `mapstructure:"path"`
	DefaultDialogue int    `mapstructure:"default_dialogue"`
	Gazetteer       string `mapstructure:"gazetteer"`
}
type Batch struct {
	Dialogues int `mapstructure:"dialogues"`
	Workers   int `mapstructure:"workers"`
}
type Export struct {
	CSV            string `mapstructure:"csv"`
	TransitionsCSV string `mapstructure:"transitions_csv"`
	SQLite         string `mapstructure:"sqlite"`
}
type Root struct {
	Pipeline struct {
		Name      string `mapstructure:"name"`
		LogLvl    string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"pipeline"`
	Services Services `mapstructure:"services"`
	Corpus   Corpus   `mapstructure:"corpus"`
	Batch    Batch    `mapstructure:"batch"`
	Export   Export   `mapstructure:"export"`
	Paths    struct {
		Outputs string `mapstructure:"outputs"`
	} `mapstructure:"paths"`
}

// EnvPrefix prefixes environment overrides, e.g. COREF_SERVICES_COREF_URL.
const EnvPrefix = "COREF"

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "coref-chains")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("pipeline.log_format", "text")
	v.SetDefault("services.coref.url", "")
	v.SetDefault("services.ner.url", "")
	v.SetDefault("services.dialogues.url", "")
	v.SetDefault("services.visualization.url", "")
	v.SetDefault("services.timeout_seconds", 60)
	v.SetDefault("corpus.path", "")
	v.SetDefault("corpus.default_dialogue", 0)
	v.SetDefault("corpus.gazetteer", "")
	v.SetDefault("batch.dialogues", 36)
	v.SetDefault("batch.workers", 1)
	v.SetDefault("export.csv", "coreference_chains.csv")
	v.SetDefault("export.transitions_csv", "")
	v.SetDefault("export.sqlite", "")
	v.SetDefault("paths.outputs", "")
}

// Load reads the config file at path, or the first file found among
// config/<CONFIG_ENV>/config.yaml and src/shared/config.yaml. A missing file
// is not an error: defaults and COREF_* environment variables still apply.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	for _, p := range []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

func (r *Root) Validate() error {
	var errs []error
	if r.Batch.Dialogues < 0 {
		errs = append(errs, errors.New("batch.dialogues must be >= 0"))
	}
	if r.Batch.Workers < 1 {
		errs = append(errs, errors.New("batch.workers must be >= 1"))
	}
	if r.Services.Dialogues.URL == "" && r.Corpus.Path == "" {
		errs = append(errs, errors.New("one of services.dialogues.url or corpus.path is required"))
	}
	if _, err := logrus.ParseLevel(r.Pipeline.LogLvl); err != nil {
		errs = append(errs, fmt.Errorf("pipeline.log_level: %w", err))
	}
	return errors.Join(errs...)
}

// Timeout is the per-request timeout of the service clients.
func (r *Root) Timeout() time.Duration { return DurSeconds(r.Services.TimeoutSeconds) }

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }

// Logger builds the process logger from the pipeline section.
func (r *Root) Logger() *logrus.Logger {
	log := logrus.New()
	if lvl, err := logrus.ParseLevel(r.Pipeline.LogLvl); err == nil {
		log.SetLevel(lvl)
	}
	if r.Pipeline.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
