package config

import (
	"overseer/core"
	"time"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("OVERSEER")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaults(config)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.App.AddressPrefix == "" {
		cfg.App.AddressPrefix = "terra"
	}

	if cfg.Ledger.Path == "" {
		cfg.Ledger.Path = "data/ledger"
	}

	if cfg.Oracle.Timeout <= 0 {
		cfg.Oracle.Timeout = 10 * time.Second
	}

	if cfg.Nats.SubjectPrefix == "" {
		cfg.Nats.SubjectPrefix = "overseer"
	}

	if cfg.WhitelistCache.Size <= 0 {
		cfg.WhitelistCache.Size = 256
	}

	if cfg.WhitelistCache.TTL <= 0 {
		cfg.WhitelistCache.TTL = time.Minute
	}

	if cfg.Dispatcher.Batch <= 0 {
		cfg.Dispatcher.Batch = 100
	}

	if cfg.Dispatcher.Interval <= 0 {
		cfg.Dispatcher.Interval = time.Second
	}
}
