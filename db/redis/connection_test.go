package redis

import (
	"context"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "valid", cfg: Config{Addr: "localhost:6379"}, wantErr: false},
		{name: "missing addr", cfg: Config{}, wantErr: true},
		{name: "addr without port", cfg: Config{Addr: "localhost"}, wantErr: true},
		{name: "negative db", cfg: Config{Addr: "localhost:6379", DB: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewRedisClient_InvalidConfig(t *testing.T) {
	if _, err := NewRedisClient(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty config")
	}
}
