package config

import "os"

type Config struct {
	HTTPPort  string
	RedisAddr string
	ShareURL  string
	Pay       PayConfig
}

// PayConfig is the gateway boundary configuration. Leaving AppID or
// AppSecret unset switches the order service into mock mode.
type PayConfig struct {
	AppID     string
	AppSecret string
	APIURL    string
	NotifyURL string
	Price     string
}

func Load() *Config {
	return &Config{
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		ShareURL:  getEnv("SHARE_URL", "https://mindhaven.example.com"),
		Pay: PayConfig{
			AppID:     getEnv("PAY_APP_ID", ""),
			AppSecret: getEnv("PAY_APP_SECRET", ""),
			APIURL:    getEnv("PAY_API_URL", "https://api.xunhupay.com/payment/do.html"),
			NotifyURL: getEnv("PAY_NOTIFY_URL", ""),
			Price:     getEnv("REPORT_PRICE", "9.90"),
		},
	}
}

// IsMockMode reports whether the service runs without a real gateway.
// Either credential missing means no signed request can be produced.
func (p PayConfig) IsMockMode() bool {
	return p.AppID == "" || p.AppSecret == ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
