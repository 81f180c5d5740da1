package notification

import (
	"strings"
	"testing"
	"unicode/utf8"

	assistanttransport "realty-portal-backend/internal/assistant/transport"
)

func TestFormatLeadIncludesContactFields(t *testing.T) {
	lead := assistanttransport.LeadInfo{
		Name:   "Pedro Gómez",
		Phone:  "+584145550000",
		Email:  "pedro@example.com",
		Intent: "comprar apartamento en Maracaibo",
	}
	text := formatLead(lead, "user: busco apartamento")

	for _, want := range []string{"Pedro Gómez", "+584145550000", "pedro@example.com", "comprar apartamento"} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted lead missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(text, "busco apartamento") {
		t.Error("transcript summary missing from formatted lead")
	}
}

func TestFormatLeadOmitsEmptyIntent(t *testing.T) {
	lead := assistanttransport.LeadInfo{Name: "Ana", Phone: "+584245550001", Email: "ana@example.com"}
	text := formatLead(lead, "")
	if strings.Contains(text, "Interés") {
		t.Error("empty intent should be omitted")
	}
}

func TestTruncateLongSummaries(t *testing.T) {
	long := strings.Repeat("x", 5000)
	got := truncate(long, 2500)
	if len(got) > 2510 {
		t.Errorf("truncate left %d bytes", len(got))
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	long := strings.Repeat("ñ", 2000) // 2 bytes each
	got := truncate(long, 2501)       // boundary falls mid-rune
	if !utf8.ValidString(got) {
		t.Error("truncate split a multibyte rune")
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("truncated summary missing ellipsis: %q", got[len(got)-8:])
	}
}

func TestModuleWithoutChannelsIsDisabled(t *testing.T) {
	m := &Module{}
	if m.Enabled() {
		t.Error("module with no channels should be disabled")
	}
	if err := m.NotifyLead(t.Context(), assistanttransport.LeadInfo{}, ""); err == nil {
		t.Error("NotifyLead without channels should report an error")
	}
}
