package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"realty-portal-backend/internal/assistant/transport"
	"realty-portal-backend/platform/apperr"
	"realty-portal-backend/platform/logger"
)

type fakeInvoker struct {
	mu      sync.Mutex
	calls   []string
	results map[string]string
	errs    map[string]error
}

func (f *fakeInvoker) Generate(ctx context.Context, model, system, prompt string) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, model)
	f.mu.Unlock()
	if err, ok := f.errs[model]; ok {
		return "", err
	}
	if out, ok := f.results[model]; ok {
		return out, nil
	}
	return `{"reply":"hola"}`, nil
}

type countingRecorder struct {
	mu    sync.Mutex
	count int
	last  transport.LeadInfo
}

func (r *countingRecorder) RecordLead(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.count++
	r.last = lead
	return nil
}

type countingNotifier struct {
	mu    sync.Mutex
	count int
	err   error
}

func (n *countingNotifier) NotifyLead(ctx context.Context, lead transport.LeadInfo, transcriptSummary string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.count++
	return n.err
}

var testModels = []string{"model-a", "model-b", "model-c"}

func newTestEngine(inv Invoker, rec LeadRecorder, not OperatorNotifier) *Engine {
	return New(Config{
		Invoker:     inv,
		Models:      testModels,
		SiteBaseURL: "https://example.com.ve",
		Recorder:    rec,
		Notifier:    not,
		Logger:      logger.New("test"),
	})
}

func TestChatTriesModelsInOrder(t *testing.T) {
	inv := &fakeInvoker{
		errs:    map[string]error{"model-a": errors.New("503 unavailable")},
		results: map[string]string{"model-b": `{"reply":"claro"}`},
	}
	eng := newTestEngine(inv, nil, nil)

	resp, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Reply != "claro" {
		t.Errorf("reply = %q, want %q", resp.Reply, "claro")
	}
	want := []string{"model-a", "model-b"}
	if strings.Join(inv.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", inv.calls, want)
	}
}

func TestChatFirstSuccessStopsFallback(t *testing.T) {
	inv := &fakeInvoker{results: map[string]string{"model-a": `{"reply":"ok"}`}}
	eng := newTestEngine(inv, nil, nil)

	if _, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if len(inv.calls) != 1 {
		t.Errorf("later candidates were tried after a success: %v", inv.calls)
	}
}

func TestChatFatalErrorStopsLoop(t *testing.T) {
	inv := &fakeInvoker{
		errs: map[string]error{"model-a": errors.New("RESOURCE_EXHAUSTED: quota exceeded")},
	}
	eng := newTestEngine(inv, nil, nil)

	_, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	if err == nil {
		t.Fatal("expected error after fatal failure")
	}
	if len(inv.calls) != 1 {
		t.Errorf("fatal failure should stop the loop, calls = %v", inv.calls)
	}
}

func TestChatAggregatesAllFailures(t *testing.T) {
	inv := &fakeInvoker{errs: map[string]error{
		"model-a": errors.New("500 internal"),
		"model-b": errors.New("timeout"),
		"model-c": errors.New("bad gateway"),
	}}
	eng := newTestEngine(inv, nil, nil)

	_, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	appErr, ok := err.(*apperr.Error)
	if !ok {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	details, _ := appErr.Details.(string)
	for _, model := range testModels {
		if !strings.Contains(details, "["+model+"]") {
			t.Errorf("aggregated error missing %s: %q", model, details)
		}
	}
}

func TestChatUnparseableReplyFallsThrough(t *testing.T) {
	inv := &fakeInvoker{results: map[string]string{
		"model-a": `not json at all`,
		"model-b": `{"reply":"bien"}`,
	}}
	eng := newTestEngine(inv, nil, nil)

	resp, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Reply != "bien" {
		t.Errorf("reply = %q, want %q", resp.Reply, "bien")
	}
}

func TestChatCompleteLeadFiresBothSideEffectsOnce(t *testing.T) {
	inv := &fakeInvoker{results: map[string]string{
		"model-a": `{"reply":"anotado","leadInfo":{"name":"Pedro","phone":"+584145550000","email":"pedro@example.com","intent":"comprar casa"}}`,
	}}
	rec := &countingRecorder{}
	not := &countingNotifier{}
	eng := newTestEngine(inv, rec, not)

	resp, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "mi correo es pedro@example.com"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Reply != "anotado" {
		t.Errorf("reply = %q", resp.Reply)
	}
	if rec.count != 1 {
		t.Errorf("lead stored %d times, want 1", rec.count)
	}
	if not.count != 1 {
		t.Errorf("operator notified %d times, want 1", not.count)
	}
	if rec.last.Name != "Pedro" {
		t.Errorf("stored lead name = %q", rec.last.Name)
	}
}

func TestChatCapturedLeadNotRestoredOnLaterTurns(t *testing.T) {
	complete := `{"reply":"anotado","leadInfo":{"name":"Pedro","phone":"+584145550000","email":"pedro@example.com","intent":"comprar casa"}}`
	inv := &fakeInvoker{results: map[string]string{"model-a": complete}}
	rec := &countingRecorder{}
	not := &countingNotifier{}
	eng := newTestEngine(inv, rec, not)

	// First turn completes the contact.
	if _, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "mi correo es pedro@example.com"}); err != nil {
		t.Fatalf("first turn: %v", err)
	}

	// Later turns resupply the captured contact; the model restates the full
	// leadInfo every turn, which must not produce another row or notification.
	followup := transport.ChatRequest{
		UserMessage: "¿puedo visitarla el sábado?",
		KnownLead:   transport.LeadInfo{Name: "Pedro", Phone: "+584145550000", Email: "pedro@example.com"},
	}
	if _, err := eng.Chat(context.Background(), followup); err != nil {
		t.Fatalf("second turn: %v", err)
	}

	if rec.count != 1 {
		t.Errorf("lead stored %d times across the conversation, want 1", rec.count)
	}
	if not.count != 1 {
		t.Errorf("operator notified %d times, want 1", not.count)
	}
}

func TestChatPartialLeadFiresNoSideEffects(t *testing.T) {
	inv := &fakeInvoker{results: map[string]string{
		"model-a": `{"reply":"¿me das tu correo?","leadInfo":{"name":"Pedro","phone":"+584145550000"}}`,
	}}
	rec := &countingRecorder{}
	not := &countingNotifier{}
	eng := newTestEngine(inv, rec, not)

	if _, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"}); err != nil {
		t.Fatalf("chat: %v", err)
	}
	if rec.count != 0 || not.count != 0 {
		t.Errorf("partial lead fired side effects: stored=%d notified=%d", rec.count, not.count)
	}
}

func TestSummarizeTranscriptTailKeepsRunesWhole(t *testing.T) {
	req := transport.ChatRequest{
		UserMessage: "sí",
		ChatHistory: []transport.ChatMessage{
			{Role: "user", Text: strings.Repeat("á", 6000)}, // 2 bytes each
		},
	}
	got := summarizeTranscript(req)
	if len(got) > 8000 {
		t.Errorf("summary is %d bytes, want at most 8000", len(got))
	}
	if !utf8.ValidString(got) {
		t.Error("tail truncation split a multibyte rune")
	}
	if !strings.HasSuffix(got, "user: sí") {
		t.Error("latest message missing from summary tail")
	}
}

func TestChatNotifierFailureDoesNotAlterReply(t *testing.T) {
	inv := &fakeInvoker{results: map[string]string{
		"model-a": `{"reply":"listo","leadInfo":{"name":"Ana","phone":"+584245550001","email":"ana@example.com"}}`,
	}}
	not := &countingNotifier{err: errors.New("slack is down")}
	eng := newTestEngine(inv, &countingRecorder{}, not)

	resp, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if resp.Reply != "listo" {
		t.Errorf("notifier failure changed the reply: %q", resp.Reply)
	}
}

func TestChatWithoutInvokerIsUnavailable(t *testing.T) {
	eng := New(Config{Models: testModels, Logger: logger.New("test")})

	_, err := eng.Chat(context.Background(), transport.ChatRequest{UserMessage: "hola"})
	appErr, ok := err.(*apperr.Error)
	if !ok || appErr.Kind != apperr.KindUnavailable {
		t.Fatalf("missing invoker should be unavailable, got %v", err)
	}
}
