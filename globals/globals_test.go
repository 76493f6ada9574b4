package globals

import "testing"

func TestEnvOr(t *testing.T) {
	t.Setenv("GLOBALS_TEST_KEY", "from-env")
	if got := EnvOr("GLOBALS_TEST_KEY", "fallback"); got != "from-env" {
		t.Errorf("EnvOr with set key = %q, want from-env", got)
	}
	if got := EnvOr("GLOBALS_TEST_KEY_UNSET", "fallback"); got != "fallback" {
		t.Errorf("EnvOr with unset key = %q, want fallback", got)
	}
}

func TestJwtSecretSetDuringInit(t *testing.T) {
	// the secret must be resolved after the .env load, never left empty
	if len(JwtSecret) == 0 {
		t.Fatal("JwtSecret was not assigned during package init")
	}
}
