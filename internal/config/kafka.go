package config

import (
	"time"
)

type KafkaConfig struct {
	Brokers      []string      `yaml:"brokers"`
	PromoTopic   string        `yaml:"promo_topic"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

func (k *KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func loadKafkaConfig() *KafkaConfig {
	return &KafkaConfig{
		Brokers:      getEnvAsSlice("KAFKA_BROKERS", []string{}),
		PromoTopic:   getEnv("KAFKA_PROMO_TOPIC", "promo-events"),
		WriteTimeout: getEnvAsDuration("KAFKA_WRITE_TIMEOUT", 5*time.Second),
	}
}
