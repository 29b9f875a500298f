// Package config loads pipeline configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Sim   SimConfig   `yaml:"sim" mapstructure:"sim"`
	Paths PathsConfig `yaml:"paths" mapstructure:"paths"`
	Plot  PlotConfig  `yaml:"plot" mapstructure:"plot"`
	Store StoreConfig `yaml:"store" mapstructure:"store"`
	Log   LogConfig   `yaml:"log" mapstructure:"log"`
}

// SimConfig describes the simulation whose output is being processed. The
// schemas are positional: field order in these lists is the field order in
// the source files, regardless of what the files' own headers claim.
type SimConfig struct {
	Atoms             int      `yaml:"atoms" mapstructure:"atoms"`
	HeaderKeyword     string   `yaml:"header_keyword" mapstructure:"header_keyword"`
	ThermoColumns     []string `yaml:"thermo_columns" mapstructure:"thermo_columns"`
	StructuralColumns []string `yaml:"structural_columns" mapstructure:"structural_columns"`
	JoinKeyLeft       string   `yaml:"join_key_left" mapstructure:"join_key_left"`
	JoinKeyRight      string   `yaml:"join_key_right" mapstructure:"join_key_right"`
}

// PathsConfig holds default artifact locations; command flags override them.
type PathsConfig struct {
	RawLog        string `yaml:"raw_log" mapstructure:"raw_log"`
	CleanedThermo string `yaml:"cleaned_thermo" mapstructure:"cleaned_thermo"`
	Structural    string `yaml:"structural" mapstructure:"structural"`
	FinalDataset  string `yaml:"final_dataset" mapstructure:"final_dataset"`
	Plot          string `yaml:"plot" mapstructure:"plot"`
}

// PlotConfig configures the melting-curve figure.
type PlotConfig struct {
	MinStep int `yaml:"min_step" mapstructure:"min_step"`
}

// StoreConfig configures the run-history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MELTPOINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("sim.atoms", 256)
	v.SetDefault("sim.header_keyword", "Step")
	v.SetDefault("sim.thermo_columns", []string{"Step", "Temp", "PotEng", "TotEng", "Press", "Density"})
	v.SetDefault("sim.structural_columns", []string{"N_bcc", "N_fcc", "N_hcp", "N_other", "Frame", "Timestep"})
	v.SetDefault("sim.join_key_left", "Step")
	v.SetDefault("sim.join_key_right", "Timestep")
	v.SetDefault("paths.raw_log", "output/thermo_data.dat")
	v.SetDefault("paths.cleaned_thermo", "output/cleaned_thermo_data.csv")
	v.SetDefault("paths.structural", "output/structural_features.txt")
	v.SetDefault("paths.final_dataset", "output/final_ml_dataset.csv")
	v.SetDefault("paths.plot", "output/melting_curve_analysis.png")
	v.SetDefault("plot.min_step", 20000)
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "meltpoint.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration before a pipeline stage runs.
func (c *Config) Validate() error {
	if c.Sim.Atoms <= 0 {
		return eris.New("config: sim.atoms must be a positive integer")
	}
	if c.Sim.HeaderKeyword == "" {
		return eris.New("config: sim.header_keyword must not be empty")
	}
	if len(c.Sim.ThermoColumns) != 6 {
		return eris.New("config: sim.thermo_columns must list exactly six columns")
	}
	if len(c.Sim.StructuralColumns) != 6 {
		return eris.New("config: sim.structural_columns must list exactly six columns")
	}
	if c.Store.Driver != "sqlite" && c.Store.Driver != "postgres" {
		return eris.New("config: store.driver must be sqlite or postgres")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
