package core

import (
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Config overseer config
type Config struct {
	App            App            `json:"app"`
	DB             db.Config      `json:"db"`
	Ledger         Ledger         `json:"ledger"`
	Oracle         Oracle         `json:"oracle"`
	Nats           Nats           `json:"nats"`
	WhitelistCache WhitelistCache `json:"whitelist_cache"`
	Dispatcher     Dispatcher     `json:"dispatcher"`
}

// App app config
type App struct {
	// bech32 prefix of human readable addresses
	AddressPrefix string `json:"address_prefix"`
}

// Ledger ledger storage config
type Ledger struct {
	Path string `json:"path"`
}

// Oracle price oracle config
type Oracle struct {
	EndPoint string        `json:"end_point"`
	Timeout  time.Duration `json:"timeout"`
}

// Nats nats config
type Nats struct {
	URL           string `json:"url"`
	SubjectPrefix string `json:"subject_prefix"`
}

// WhitelistCache whitelist cache config
type WhitelistCache struct {
	Size int           `json:"size"`
	TTL  time.Duration `json:"ttl"`
}

// Dispatcher instruction dispatcher config
type Dispatcher struct {
	Batch    int           `json:"batch"`
	Interval time.Duration `json:"interval"`
}
