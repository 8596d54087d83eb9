package config

import "testing"

func TestLoadLLMConfig(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_ENABLED", "")
	t.Setenv("LLM_MODEL", "")

	cfg := loadLLMConfig()
	if !cfg.Enabled {
		t.Fatal("expected llm enabled when a key is set")
	}
	if cfg.APIKey != "test-key" {
		t.Fatalf("api key: got %q", cfg.APIKey)
	}
	if cfg.Model != "gemini-2.0-flash" {
		t.Fatalf("model default: got %q", cfg.Model)
	}
}

func TestLoadLLMConfigDisabled(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("LLM_ENABLED", "false")

	cfg := loadLLMConfig()
	if cfg.Enabled {
		t.Fatal("LLM_ENABLED=false should win over a present key")
	}
}

func TestLoadLLMConfigNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("LLM_ENABLED", "true")

	cfg := loadLLMConfig()
	if cfg.Enabled {
		t.Fatal("llm cannot be enabled without a key")
	}
}
