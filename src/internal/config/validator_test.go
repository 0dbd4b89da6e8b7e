package config

import (
	"errors"
	"strings"
	"testing"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Destination = "/var/lib/blocklist.txt"
	cfg.URLs = []string{"https://example.com/drop.txt"}
	return cfg
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing destination", func(c *Config) { c.Destination = "" }, "destination"},
		{"no urls", func(c *Config) { c.URLs = nil }, "urls"},
		{"ftp url", func(c *Config) { c.URLs = append(c.URLs, "ftp://example.com/list.txt") }, "urls[1]"},
		{"relative url", func(c *Config) { c.URLs = []string{"/drop.txt"} }, "urls[0]"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"broken user agent template", func(c *Config) { c.UserAgent = "agent/{{version" }, "user_agent"},
		{"empty user agent", func(c *Config) { c.UserAgent = "" }, "user_agent"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.ValidateConfig()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Expected no error, got: %v", err)
				}
				return
			}

			var verrs ValidationErrors
			if !errors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors, got %T: %v", err, err)
			}

			found := false
			for _, e := range verrs {
				if e.FieldPath == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected error for field %s, got: %v", tt.wantField, verrs)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{FieldPath: "destination", Message: "field is required"},
		{FieldPath: "urls[0]", Message: "must be an absolute http:// or https:// URL"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 error(s)") {
		t.Errorf("Expected error count in message, got %q", msg)
	}
	if !strings.Contains(msg, "urls[0]: must be an absolute") {
		t.Errorf("Expected field path in message, got %q", msg)
	}
}

func TestCheckSourceURL(t *testing.T) {
	if err := checkSourceURL("https://lists.example.net/drop.txt"); err != nil {
		t.Errorf("Expected valid URL, got: %v", err)
	}
	if err := checkSourceURL("https://"); err == nil {
		t.Error("Expected error for URL without host")
	}
	if err := checkSourceURL("file:///etc/hosts"); err == nil {
		t.Error("Expected error for file URL")
	}
}
