package openai

import "testing"

func TestNewClientRequiresModel(t *testing.T) {
	if _, err := NewClient("sk-test", ""); err == nil {
		t.Fatal("expected error when model is empty")
	}
}

func TestNewClientRequiresKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error when api key is empty")
	}
}

func TestIsGPT5(t *testing.T) {
	if !isGPT5("GPT-5-mini") {
		t.Fatal("expected gpt-5 prefix match")
	}
	if isGPT5("gpt-4o-mini") {
		t.Fatal("did not expect gpt-4o to match")
	}
}
