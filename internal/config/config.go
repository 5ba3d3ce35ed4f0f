package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	BaseURL  string  `yaml:"base-url" env:"BASE_URL" env-default:""`
	Storage  string  `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis    Redis   `yaml:"redis"`
	Solana   Solana  `yaml:"solana"`
	Actions  Actions `yaml:"actions"`
	Minter   Minter  `yaml:"minter"`
}

type Redis struct {
	Host string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	TTL  time.Duration `yaml:"ttl" env:"REDIS_TTL" env-default:"0s"`
}

type Solana struct {
	RPCURL     string `yaml:"rpc-url" env:"SOLANA_RPC_URL" env-default:"https://api.devnet.solana.com"`
	Commitment string `yaml:"commitment" env:"SOLANA_COMMITMENT" env-default:"finalized"`
}

// Actions holds the settlement parameters shared by every route family.
type Actions struct {
	Recipient     string    `yaml:"recipient" env:"ACTIONS_RECIPIENT" env-default:"9FK3BZiGatVrDwVZoMZsJQW24ETAmmzBAGPnJp9jSdtu"`
	Lamports      uint64    `yaml:"lamports" env:"ACTIONS_LAMPORTS" env-default:"1000000"`
	DonateAmounts []float64 `yaml:"donate-amounts" env:"ACTIONS_DONATE_AMOUNTS" env-default:"0.1,0.5,1"`
}

// Minter configures the external NFT minting API. An empty URL disables the mint route family.
type Minter struct {
	URL     string        `yaml:"url" env:"MINTER_URL" env-default:""`
	APIKey  string        `yaml:"api-key" env:"MINTER_API_KEY" env-default:""`
	Symbol  string        `yaml:"symbol" env:"MINTER_SYMBOL" env-default:"TTT"`
	Timeout time.Duration `yaml:"timeout" env:"MINTER_TIMEOUT" env-default:"10s"`
}

// MustLoad - load all configurations in config.yml file, falling back to the environment when the file is absent.
func MustLoad(path string) *Config {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			panic(fmt.Errorf("unable to load config from env: %w", err))
		}

		return config
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Minter) Enabled() bool {
	return that.URL != ""
}
