package engine

import (
	"strings"
	"testing"

	"realty-portal-backend/internal/assistant/transport"
)

func TestSystemInstructionsEmptyCatalogIsExplicit(t *testing.T) {
	out := BuildSystemInstructions("https://example.com.ve", "", nil, transport.LeadInfo{})
	if !strings.Contains(out, "no listings are available right now") {
		t.Error("empty catalog should carry an explicit no-inventory note")
	}
}

func TestSystemInstructionsListsCatalogWithDeepLinks(t *testing.T) {
	props := []transport.PropertyContext{
		{ID: "abc-123", Title: "Casa en El Milagro", Type: "House", Price: 150000, Beds: 3, Baths: 2, Location: "Maracaibo"},
	}
	out := BuildSystemInstructions("https://example.com.ve", "", props, transport.LeadInfo{})
	if !strings.Contains(out, "Casa en El Milagro") {
		t.Error("listing title missing from instructions")
	}
	if !strings.Contains(out, "https://example.com.ve/property/abc-123") {
		t.Error("deep link missing from instructions")
	}
}

func TestSystemInstructionsRestatesKnownFields(t *testing.T) {
	known := transport.LeadInfo{Name: "Pedro", Email: "pedro@example.com"}
	out := BuildSystemInstructions("https://example.com.ve", "", nil, known)

	if !strings.Contains(out, "name: Pedro (do not ask again)") {
		t.Error("known name should be restated with a do-not-ask marker")
	}
	if !strings.Contains(out, "email: pedro@example.com (do not ask again)") {
		t.Error("known email should be restated with a do-not-ask marker")
	}
	if strings.Contains(out, "phone:") {
		t.Error("unknown phone should not be restated")
	}
}

func TestSystemInstructionsCarryLanguagePreference(t *testing.T) {
	out := BuildSystemInstructions("https://example.com.ve", "Spanish", nil, transport.LeadInfo{})
	if !strings.Contains(out, "answered in Spanish") {
		t.Error("declared language preference missing from instructions")
	}

	out = BuildSystemInstructions("https://example.com.ve", "", nil, transport.LeadInfo{})
	if strings.Contains(out, "prefers to be answered") {
		t.Error("no preference hint expected when language is unset")
	}
}

func TestBuildPromptSerializesTranscript(t *testing.T) {
	history := []transport.ChatMessage{
		{Role: "user", Text: "busco casa"},
		{Role: "assistant", Text: "¿comprar o alquilar?"},
	}
	out := BuildPrompt("comprar", history)

	if !strings.Contains(out, "Visitor: busco casa") {
		t.Error("user turn missing from prompt")
	}
	if !strings.Contains(out, "Assistant: ¿comprar o alquilar?") {
		t.Error("assistant turn missing from prompt")
	}
	if !strings.Contains(out, `Visitor says: "comprar"`) {
		t.Error("new message missing from prompt")
	}
}
