package config

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/bomweave/bomweave/bomweave/format"
	"github.com/bomweave/bomweave/internal"
)

var ErrApplicationConfigNotFound = fmt.Errorf("application config not found")

type defaultValueLoader interface {
	loadDefaultValues(*viper.Viper)
}

type parser interface {
	parseConfigValues() error
}

type CliOnlyOptions struct {
	ConfigPath string
	Verbosity  int
}

type Application struct {
	ConfigPath    string         `yaml:",omitempty" json:"configPath"` // the location where the application config was read from (either from -c or discovered while loading)
	Output        string         `yaml:"output" json:"output" mapstructure:"output"`                            // -o, the target encoding (xml or json)
	OutputVersion string         `yaml:"output-version" json:"output-version" mapstructure:"output-version"`    // --output-version, the target schema version
	Input         string         `yaml:"input" json:"input" mapstructure:"input"`                               // -i, the source encoding (xml or json)
	InputVersion  string         `yaml:"input-version" json:"input-version" mapstructure:"input-version"`       // --input-version, the declared schema version of the source document
	File          string         `yaml:"file" json:"file" mapstructure:"file"`                                  // --file, the file to write converted output to instead of stdout
	Quiet         bool           `yaml:"quiet" json:"quiet" mapstructure:"quiet"`                               // -q, suppress all log output to stderr
	CliOptions    CliOnlyOptions `yaml:"-" json:"-"`
	Log           logging        `yaml:"log" json:"log" mapstructure:"log"`
	Dev           development    `yaml:"dev" json:"dev" mapstructure:"dev"`

	OutputEncoding    format.Encoding    `yaml:"-" json:"-"`
	OutputSpecVersion format.SpecVersion `yaml:"-" json:"-"`
	InputEncoding     format.Encoding    `yaml:"-" json:"-"`
	InputSpecVersion  format.SpecVersion `yaml:"-" json:"-"`
}

func newApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) *Application {
	config := &Application{
		CliOptions: cliOpts,
	}
	config.loadDefaultValues(v)
	return config
}

func LoadApplicationConfig(v *viper.Viper, cliOpts CliOnlyOptions) (*Application, error) {
	// the user may not have a config, and this is OK: the defaults plus cli
	// flag values are a complete configuration
	config := newApplicationConfig(v, cliOpts)

	if err := readConfig(v, cliOpts.ConfigPath); err != nil && !errors.Is(err, ErrApplicationConfigNotFound) {
		return nil, err
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	config.ConfigPath = v.ConfigFileUsed()

	if err := config.parseConfigValues(); err != nil {
		return nil, fmt.Errorf("invalid application config: %w", err)
	}

	return config, nil
}

// loadDefaultValues loads the default configuration values into the viper
// instance, before the config values are read and parsed.
func (cfg Application) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("output", string(format.JSON))
	v.SetDefault("output-version", string(format.V1_4))
	v.SetDefault("input", string(format.JSON))
	v.SetDefault("input-version", string(format.V1_4))
	v.SetDefault("file", "")
	v.SetDefault("quiet", false)

	// for each field in the configuration struct, see if the field implements
	// the defaultValueLoader interface and invoke it if it does
	value := reflect.ValueOf(cfg)
	for i := 0; i < value.NumField(); i++ {
		// note: the defaultValueLoader method receiver is NOT a pointer receiver.
		if loadable, ok := value.Field(i).Interface().(defaultValueLoader); ok {
			loadable.loadDefaultValues(v)
		}
	}
}

func (cfg *Application) parseConfigValues() error {
	for _, optionFn := range []func() error{
		cfg.parseLogLevelOption,
		cfg.parseFormatOptions,
	} {
		if err := optionFn(); err != nil {
			return err
		}
	}

	// for each field in the configuration struct, see if the field implements
	// the parser interface; the app config is a pointer, so grab elements
	// explicitly to traverse the address
	value := reflect.ValueOf(cfg).Elem()
	for i := 0; i < value.NumField(); i++ {
		// the parser method receiver is a pointer receiver, so take the
		// field's address
		if parsable, ok := value.Field(i).Addr().Interface().(parser); ok {
			if err := parsable.parseConfigValues(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cfg *Application) parseLogLevelOption() error {
	switch {
	case cfg.Quiet:
		cfg.Log.LevelOpt = logrus.PanicLevel
	case cfg.CliOptions.Verbosity > 0:
		switch v := cfg.CliOptions.Verbosity; {
		case v == 1:
			cfg.Log.LevelOpt = logrus.InfoLevel
		default:
			cfg.Log.LevelOpt = logrus.DebugLevel
		}
	case cfg.Log.Level != "":
		lvl, err := logrus.ParseLevel(strings.ToLower(cfg.Log.Level))
		if err != nil {
			return fmt.Errorf("bad log level value '%s': %w", cfg.Log.Level, err)
		}
		cfg.Log.LevelOpt = lvl
	default:
		cfg.Log.LevelOpt = logrus.WarnLevel
	}
	if cfg.Log.FileLocation != "" && cfg.Log.LevelOpt < logrus.InfoLevel {
		cfg.Log.LevelOpt = logrus.InfoLevel
	}
	return nil
}

func (cfg *Application) parseFormatOptions() error {
	var err error
	if cfg.OutputEncoding, err = format.ParseEncoding(cfg.Output); err != nil {
		return err
	}
	if cfg.OutputSpecVersion, err = format.ParseSpecVersion(cfg.OutputVersion); err != nil {
		return err
	}
	if cfg.InputEncoding, err = format.ParseEncoding(cfg.Input); err != nil {
		return err
	}
	if cfg.InputSpecVersion, err = format.ParseSpecVersion(cfg.InputVersion); err != nil {
		return err
	}
	return nil
}

func (cfg Application) String() string {
	// yaml is pretty human friendly (at least when compared to json)
	appCfgStr, err := yaml.Marshal(&cfg)
	if err != nil {
		return err.Error()
	}
	return string(appCfgStr)
}

// readConfig attempts to read the given config path from disk or discover an
// alternate store location.
func readConfig(v *viper.Viper, configPath string) error {
	var err error
	v.AutomaticEnv()
	v.SetEnvPrefix(internal.ApplicationName)
	// allow for nested options to be specified via environment variables
	// e.g. log.level = BOMWEAVE_LOG_LEVEL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	// use explicitly the given user config
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read application config=%q : %w", configPath, err)
		}
		// don't fall through to other options if the config path was explicitly provided
		return nil
	}

	// start searching for valid configs in order...

	// 1. look for .<appname>.yaml (in the current directory)
	v.AddConfigPath(".")
	v.SetConfigName("." + internal.ApplicationName)
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 2. look for .<appname>/config.yaml (in the current directory)
	v.AddConfigPath("." + internal.ApplicationName)
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	// 3. look for ~/.<appname>.yaml
	home, err := homedir.Dir()
	if err == nil {
		v.AddConfigPath(home)
		v.SetConfigName("." + internal.ApplicationName)
		if err = v.ReadInConfig(); err == nil {
			return nil
		} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
		}
	}

	// 4. look for <appname>/config.yaml in xdg locations (starting with xdg
	// home config dir, then moving upwards)
	v.AddConfigPath(path.Join(xdg.ConfigHome, internal.ApplicationName))
	for _, dir := range xdg.ConfigDirs {
		v.AddConfigPath(path.Join(dir, internal.ApplicationName))
	}
	v.SetConfigName("config")
	if err = v.ReadInConfig(); err == nil {
		return nil
	} else if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return fmt.Errorf("unable to parse config=%q: %w", v.ConfigFileUsed(), err)
	}

	return ErrApplicationConfigNotFound
}
