package internal

import "testing"

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Auth.AuthEnabled() {
		t.Error("auth enabled by default")
	}
	if cfg.App.HTTP.Address() != ":8080" {
		t.Errorf("address = %q", cfg.App.HTTP.Address())
	}
}

func TestAuthConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AuthConfig
		wantErr bool
		enabled bool
	}{
		{"empty mode defaults to disabled", AuthConfig{}, false, false},
		{"disabled", AuthConfig{Mode: AuthModeDisabled}, false, false},
		{"token with token", AuthConfig{Mode: AuthModeToken, Token: "s3cret"}, false, true},
		{"token without token", AuthConfig{Mode: AuthModeToken}, true, false},
		{"unknown mode", AuthConfig{Mode: "oauth"}, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && tc.cfg.AuthEnabled() != tc.enabled {
				t.Errorf("AuthEnabled() = %v, want %v", tc.cfg.AuthEnabled(), tc.enabled)
			}
		})
	}
}

func TestHTTPConfigValidation(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		c := HTTPConfig{Port: port}
		if err := c.Validate(); err == nil {
			t.Errorf("port %d accepted", port)
		}
	}
	c := HTTPConfig{Port: 8080}
	if err := c.Validate(); err != nil {
		t.Errorf("port 8080 rejected: %v", err)
	}
}

func TestFetchConfigValidation(t *testing.T) {
	c := FetchConfig{TimeoutSeconds: 0, UserAgent: "x"}
	if err := c.Validate(); err == nil {
		t.Error("zero timeout accepted")
	}
	c = FetchConfig{TimeoutSeconds: 5}
	if err := c.Validate(); err == nil {
		t.Error("empty user agent accepted")
	}
	c = FetchConfig{TimeoutSeconds: 5, UserAgent: "bindrune/0.1.0"}
	if err := c.Validate(); err != nil {
		t.Errorf("valid fetch config rejected: %v", err)
	}
}
