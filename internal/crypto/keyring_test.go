package crypto

import "testing"

func TestNewKeyring_EnvOverride(t *testing.T) {
	t.Setenv(EnvKey, "s3cret")

	k := NewKeyring()
	if !k.IsAvailable() {
		t.Fatalf("expected keyring available when %s is set", EnvKey)
	}
	key, err := k.GetKey()
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if key != "s3cret" {
		t.Fatalf("expected s3cret, got %q", key)
	}
}

func TestEnvKeyring_Unset(t *testing.T) {
	t.Setenv(EnvKey, "")

	k := envKeyring{}
	if k.IsAvailable() {
		t.Fatalf("expected unavailable")
	}
	if _, err := k.GetKey(); err == nil {
		t.Fatalf("expected error when unset")
	}
	if err := k.SetKey(""); err == nil {
		t.Fatalf("expected error for empty password")
	}
	if err := k.SetKey("pw"); err == nil {
		t.Fatalf("env keyring cannot store keys")
	}
}
