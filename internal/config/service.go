package config

import "time"

type ServiceConfig struct {
	Name         string             `yaml:"name"`
	Environment  string             `yaml:"environment"`
	Version      string             `yaml:"version"`
	ClientURL    string             `yaml:"client_url"`
	Asaas        AsaasConfig        `yaml:"asaas"`
	OrderService OrderServiceConfig `yaml:"order_service"`
}

// AsaasConfig holds the payment gateway credentials and endpoint.
type AsaasConfig struct {
	BaseURL       string        `yaml:"base_url"`
	APIKey        string        `yaml:"api_key"`
	WebhookSecret string        `yaml:"webhook_secret"`
	Timeout       time.Duration `yaml:"timeout"`
}

// OrderServiceConfig holds the order-management service endpoint used for
// payment-confirmed notifications.
type OrderServiceConfig struct {
	URL        string        `yaml:"url"`
	ServiceKey string        `yaml:"service_key"`
	Timeout    time.Duration `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}
