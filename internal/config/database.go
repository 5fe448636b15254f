package config

import (
	"fmt"
	"path"

	"github.com/adrg/xdg"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/anchore/cpematch/cpematch/db"
	"github.com/anchore/cpematch/internal"
)

type database struct {
	Dir string `yaml:"cache-dir" json:"cache-dir" mapstructure:"cache-dir"`
}

func (cfg database) loadDefaultValues(v *viper.Viper) {
	v.SetDefault("db.cache-dir", path.Join(xdg.CacheHome, internal.ApplicationName, "db"))
}

func (cfg *database) parseConfigValues() error {
	if cfg.Dir == "" {
		return fmt.Errorf("db.cache-dir must not be empty")
	}
	dir, err := homedir.Expand(cfg.Dir)
	if err != nil {
		return fmt.Errorf("unable to expand db.cache-dir=%q: %w", cfg.Dir, err)
	}
	cfg.Dir = dir
	return nil
}

func (cfg database) ToCuratorConfig() db.Config {
	return db.Config{
		DBDir: cfg.Dir,
	}
}
