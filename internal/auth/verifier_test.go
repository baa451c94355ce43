package auth

import "taskhub/internal/config"

func configFor(mode string) config.AuthConfig {
	return config.AuthConfig{Mode: mode, JWTSecret: testSecret}
}
