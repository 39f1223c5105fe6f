package banking

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	ListenAddr   string
	NodeID       int64
	SeedDemoData bool
	HTTPLog      bool
	KafkaBrokers []string
	KafkaTopic   string
	ENV          string
}

type Config struct {
	ListenAddr   string   `yaml:"listenAddr"`
	NodeID       int64    `yaml:"nodeID"`
	SeedDemoData bool     `yaml:"seedDemoData"`
	HTTPLog      bool     `yaml:"httpLog"`
	KafkaBrokers []string `yaml:"kafkaBrokers"`
	KafkaTopic   string   `yaml:"kafkaTopic"`
}

func LoadConfig() (*AppConfig, error) {
	baseConfigFile, err := os.ReadFile("config/server.yaml")

	if err != nil {
		return nil, fmt.Errorf("read base config failed: %w", err)
	}

	var config Config
	err = yaml.Unmarshal(baseConfigFile, &config)

	if err != nil {
		return nil, fmt.Errorf("parse base config failed: %w", err)
	}

	err = validateConfig(config)

	if err != nil {
		return nil, err
	}

	appEnv := os.Getenv("APP_ENV")

	if appEnv == "" {
		return toAppConfig(config, "local"), nil
	}

	overrideConfigFile, err := os.ReadFile("config/server." + appEnv + ".yaml")

	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return toAppConfig(config, appEnv), nil
		}

		return nil, fmt.Errorf("read override config failed: %w", err)
	}

	var overrideConfig Config
	err = yaml.Unmarshal(overrideConfigFile, &overrideConfig)

	if err != nil {
		return nil, fmt.Errorf("parse override config failed: %w", err)
	}

	if overrideConfig.ListenAddr != "" {
		config.ListenAddr = overrideConfig.ListenAddr
	}
	if overrideConfig.NodeID != 0 {
		config.NodeID = overrideConfig.NodeID
	}
	if overrideConfig.SeedDemoData {
		config.SeedDemoData = true
	}
	if overrideConfig.HTTPLog {
		config.HTTPLog = true
	}
	if len(overrideConfig.KafkaBrokers) != 0 {
		config.KafkaBrokers = overrideConfig.KafkaBrokers
	}
	if overrideConfig.KafkaTopic != "" {
		config.KafkaTopic = overrideConfig.KafkaTopic
	}

	err = validateConfig(config)

	if err != nil {
		return nil, err
	}

	return toAppConfig(config, appEnv), nil
}

func validateConfig(config Config) error {
	if config.ListenAddr == "" {
		return errors.New("listen address is not set")
	}

	if len(config.KafkaBrokers) != 0 && config.KafkaTopic == "" {
		return errors.New("kafka topic is not set")
	}

	return nil
}

func toAppConfig(config Config, env string) *AppConfig {
	return &AppConfig{
		ListenAddr:   config.ListenAddr,
		NodeID:       config.NodeID,
		SeedDemoData: config.SeedDemoData,
		HTTPLog:      config.HTTPLog,
		KafkaBrokers: config.KafkaBrokers,
		KafkaTopic:   config.KafkaTopic,
		ENV:          env,
	}
}
