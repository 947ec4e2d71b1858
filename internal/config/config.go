package config

import (
	stderrors "errors"
	"io/fs"
	"strconv"
	"strings"

	"datalab/adapters/datareadiness/coercer"
	"datalab/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "DATALAB"

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Chart    ChartConfig
	Coercion CoercionConfig
	Log      LogConfig
}

// DataConfig holds where the dataset files live
type DataConfig struct {
	Dir string
}

// ChartConfig holds histogram output settings
type ChartConfig struct {
	Dir      string // PNG output directory, empty disables PNG output
	BarWidth int    // Terminal bar length of the tallest bin
}

// CoercionConfig holds column coercion settings
type CoercionConfig struct {
	Policy coercer.Policy
}

// LogConfig holds logging settings
type LogConfig struct {
	Level zapcore.Level
}

// Options says where configuration is read from
type Options struct {
	EnvFiles    []string // dotenv files, missing files are skipped
	ConfigPaths []string // directories searched for datalab.yaml
}

// DefaultOptions reads .env and datalab.yaml from the working directory
func DefaultOptions() Options {
	return Options{
		EnvFiles:    []string{".env"},
		ConfigPaths: []string{"."},
	}
}

// Load reads configuration from the working directory and environment
func Load() (*Config, error) {
	return LoadWithOptions(DefaultOptions())
}

// LoadWithOptions reads dotenv files, then datalab.yaml, then the
// environment, and validates the result. Environment values win over the
// file, which wins over defaults.
func LoadWithOptions(opts Options) (*Config, error) {
	for _, file := range opts.EnvFiles {
		if err := godotenv.Load(file); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "failed to load %s", file)
		}
	}

	v := newViper()
	for _, path := range opts.ConfigPaths {
		v.AddConfigPath(path)
	}
	if len(opts.ConfigPaths) > 0 {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "failed to read datalab.yaml"))
			}
		}
	}

	config, err := fromViper(v)
	if err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("datalab")
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("data.dir", "data")
	v.SetDefault("chart.dir", "")
	v.SetDefault("chart.bar_width", 40)
	v.SetDefault("coercion.policy", string(coercer.PolicyStrict))
	v.SetDefault("log.level", "warn")

	// Shorter name than the key path would give.
	_ = v.BindEnv("chart.bar_width", EnvPrefix+"_BAR_WIDTH")
	return v
}

func fromViper(v *viper.Viper) (*Config, error) {
	config := &Config{
		Data:  DataConfig{Dir: strings.TrimSpace(v.GetString("data.dir"))},
		Chart: ChartConfig{Dir: strings.TrimSpace(v.GetString("chart.dir"))},
	}

	if config.Data.Dir == "" {
		return nil, errors.ConfigInvalid("data directory is required")
	}

	barWidth, err := parseBarWidth(v.GetString("chart.bar_width"))
	if err != nil {
		return nil, err
	}
	config.Chart.BarWidth = barWidth

	policy, err := coercer.ParsePolicy(v.GetString("coercion.policy"))
	if err != nil {
		return nil, err
	}
	config.Coercion.Policy = policy

	level, err := zapcore.ParseLevel(strings.TrimSpace(v.GetString("log.level")))
	if err != nil {
		return nil, errors.ConfigInvalid("invalid log level " + v.GetString("log.level"))
	}
	config.Log.Level = level

	return config, nil
}

func parseBarWidth(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > 1000 {
		return 0, errors.ConfigInvalid("bar width must be an integer between 1 and 1000, got " + s)
	}
	return n, nil
}
