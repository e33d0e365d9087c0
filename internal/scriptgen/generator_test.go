package scriptgen

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/nvelop/pitchdrill/internal/openai"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCompleter struct {
	mu       sync.Mutex
	reply    string
	err      error
	messages [][]openai.Message
	params   []openai.Params
}

func (f *fakeCompleter) Complete(_ context.Context, messages []openai.Message, params openai.Params) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, messages)
	f.params = append(f.params, params)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

const sampleScriptJSON = `{
  "title": "Enterprise CPO - Acme Corp",
  "description": "Procurement automation pitch for a manufacturing CPO",
  "industry": "manufacturing",
  "company_size": "enterprise",
  "target_location": "Germany",
  "product_name": "Nvelop",
  "target_role": "Chief Procurement Officer",
  "difficulty_level": "advanced",
  "sections": [
    {
      "section_type": "intro",
      "title": "Opening & Pattern Interrupt",
      "order_index": 0,
      "content": "Hi, this is Anuj from Nvelop.",
      "talking_points": ["Smile while dialing", "Pause after the name"],
      "tips": "Keep it under ten seconds"
    },
    {
      "section_type": "close",
      "title": "Close & Next Steps",
      "order_index": 4,
      "content": "Would Tuesday or Thursday work for a 20-minute walkthrough?",
      "talking_points": ["Offer two slots"],
      "tips": "Stop talking after the ask"
    }
  ]
}`

func TestGenerate_Success(t *testing.T) {
	llm := &fakeCompleter{reply: sampleScriptJSON}
	gen := NewGenerator(llm, discardLogger())

	script, err := gen.Generate(context.Background(), Prospect{
		Name:        "Hanna Becker",
		Title:       "Chief Procurement Officer",
		Company:     "Acme Corp",
		Industry:    "manufacturing",
		CompanySize: "enterprise",
		Location:    "Germany",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if script.Title != "Enterprise CPO - Acme Corp" {
		t.Errorf("unexpected title: %q", script.Title)
	}
	if script.Industry != "manufacturing" || script.CompanySize != "enterprise" {
		t.Errorf("unexpected targeting: %q / %q", script.Industry, script.CompanySize)
	}
	if script.DifficultyLevel != "advanced" {
		t.Errorf("unexpected difficulty: %q", script.DifficultyLevel)
	}
	if len(script.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(script.Sections))
	}
	if script.Sections[0].SectionType != "intro" || script.Sections[1].SectionType != "close" {
		t.Errorf("unexpected section types: %q, %q", script.Sections[0].SectionType, script.Sections[1].SectionType)
	}
	if len(script.Sections[0].TalkingPoints) != 2 {
		t.Errorf("expected 2 talking points, got %d", len(script.Sections[0].TalkingPoints))
	}

	if len(llm.messages) != 1 {
		t.Fatalf("expected 1 model call, got %d", len(llm.messages))
	}
	sent := llm.messages[0]
	if len(sent) != 2 {
		t.Fatalf("expected system + user message, got %d", len(sent))
	}
	if sent[0].Role != "system" || !strings.Contains(sent[0].Content, "ONLY valid JSON") {
		t.Errorf("unexpected system message: %+v", sent[0])
	}
	if !strings.Contains(sent[1].Content, "- Name: Hanna Becker") {
		t.Error("prompt missing prospect name")
	}
	if !strings.Contains(sent[1].Content, "- Company: Acme Corp") {
		t.Error("prompt missing prospect company")
	}
	if strings.Contains(sent[1].Content, "{industry}") {
		t.Error("prompt still contains unexpanded placeholders")
	}

	p := llm.params[0]
	if p.Temperature != 0.7 || p.MaxTokens != 4000 {
		t.Errorf("unexpected generation params: %+v", p)
	}
	if p.PresencePenalty != 0 {
		t.Errorf("generation should not set presence penalty, got %f", p.PresencePenalty)
	}
}

func TestGenerate_PromptDefaults(t *testing.T) {
	llm := &fakeCompleter{reply: sampleScriptJSON}
	gen := NewGenerator(llm, discardLogger())

	if _, err := gen.Generate(context.Background(), Prospect{}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	prompt := llm.messages[0][1].Content
	for _, want := range []string{
		"- Name: Unknown",
		"- Title/Role: Procurement Leader",
		"- Industry: general",
		"- Company Size: mid_market",
		"- Location: US",
		"- LinkedIn Summary: Not provided",
		"- Additional Context: None",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing default line %q", want)
		}
	}
}

func TestGenerate_StripsMarkdownFences(t *testing.T) {
	llm := &fakeCompleter{reply: "```json\n" + sampleScriptJSON + "\n```"}
	gen := NewGenerator(llm, discardLogger())

	script, err := gen.Generate(context.Background(), Prospect{Title: "CPO"})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if script.Title != "Enterprise CPO - Acme Corp" {
		t.Errorf("unexpected title after fence stripping: %q", script.Title)
	}
}

func TestGenerate_FallbacksForSparseReply(t *testing.T) {
	llm := &fakeCompleter{reply: `{"title": "Bare", "sections": [{"content": "Hello."}]}`}
	gen := NewGenerator(llm, discardLogger())

	script, err := gen.Generate(context.Background(), Prospect{
		Title:    "VP Procurement",
		Industry: "retail",
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if script.Industry != "retail" {
		t.Errorf("expected prospect industry fallback, got %q", script.Industry)
	}
	if script.CompanySize != "mid_market" || script.TargetLocation != "US" {
		t.Errorf("expected generic defaults, got %q / %q", script.CompanySize, script.TargetLocation)
	}
	if script.ProductName != "Nvelop" {
		t.Errorf("expected default product name, got %q", script.ProductName)
	}
	if script.TargetRole != "VP Procurement" {
		t.Errorf("expected prospect title as target role, got %q", script.TargetRole)
	}
	if script.DifficultyLevel != "intermediate" {
		t.Errorf("expected default difficulty, got %q", script.DifficultyLevel)
	}
	if len(script.Sections) != 1 || script.Sections[0].SectionType != "intro" {
		t.Errorf("expected default section type, got %+v", script.Sections)
	}
}

func TestGenerate_ModelFailure(t *testing.T) {
	llm := &fakeCompleter{err: errors.New("connection refused")}
	gen := NewGenerator(llm, discardLogger())

	if _, err := gen.Generate(context.Background(), Prospect{}); err == nil {
		t.Fatal("expected error when model call fails")
	}
}

func TestGenerate_InvalidJSON(t *testing.T) {
	llm := &fakeCompleter{reply: "Sorry, I can't produce that."}
	gen := NewGenerator(llm, discardLogger())

	_, err := gen.Generate(context.Background(), Prospect{})
	if err == nil || !strings.Contains(err.Error(), "decode generated script") {
		t.Fatalf("expected decode error, got %v", err)
	}
}
