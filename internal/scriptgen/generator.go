// Package scriptgen turns prospect research into a full cold call script
// by asking the model for structured JSON and decoding it into catalog
// records.
package scriptgen

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/openai"
)

const generatorSystemPrompt = "You are a JSON generator. Return ONLY valid JSON."

const scriptPromptTemplate = `You are an expert SDR (Sales Development Representative) cold call script writer for Nvelop, an AI procurement platform.

Given the following prospect details, generate a complete cold call script with 5 sections.

PROSPECT DETAILS:
- Name: {prospect_name}
- Title/Role: {prospect_title}
- Company: {prospect_company}
- Industry: {industry}
- Company Size: {company_size}
- Location: {location}
- LinkedIn Summary: {linkedin_summary}
- Additional Context: {additional_context}

PRODUCT: Nvelop — an AI-powered procurement platform that uses AI agents to automate sourcing, RFP creation, vendor evaluation, and procurement workflows end-to-end.

Generate a JSON object with this exact structure:
{{
  "title": "Short script title (e.g. 'Enterprise CPO - [Company Name]')",
  "description": "One-line description of this script's focus",
  "industry": "{industry}",
  "company_size": "{company_size}",
  "target_location": "{location}",
  "product_name": "Nvelop",
  "target_role": "{prospect_title}",
  "difficulty_level": "intermediate",
  "sections": [
    {{
      "section_type": "intro",
      "title": "Opening & Pattern Interrupt",
      "order_index": 0,
      "content": "The opening lines the SDR should say.",
      "talking_points": ["Tip 1", "Tip 2", "Tip 3", "Tip 4"],
      "tips": "A pro tip for this section"
    }},
    {{
      "section_type": "discovery",
      "title": "Social Proof & Discovery",
      "order_index": 1,
      "content": "Social proof opener with discovery questions.",
      "talking_points": ["Tip 1", "Tip 2", "Tip 3"],
      "tips": "Pro tip"
    }},
    {{
      "section_type": "pitch",
      "title": "Pain Discovery & Value Proposition",
      "order_index": 2,
      "content": "Discovery question then value prop.",
      "talking_points": ["Tip 1", "Tip 2", "Tip 3"],
      "tips": "Pro tip"
    }},
    {{
      "section_type": "objection_handling",
      "title": "Objection Handling",
      "order_index": 3,
      "content": "Differentiator then 3-4 objections with responses.",
      "talking_points": ["Tip 1", "Tip 2", "Tip 3", "Tip 4"],
      "tips": "Pro tip"
    }},
    {{
      "section_type": "close",
      "title": "Close & Next Steps",
      "order_index": 4,
      "content": "Closing ask for a meeting.",
      "talking_points": ["Tip 1", "Tip 2", "Tip 3"],
      "tips": "Pro tip"
    }}
  ]
}}

IMPORTANT RULES:
1. Make it highly personalized to this specific prospect
2. Use conversational, natural language
3. Include realistic objections this prospect would raise
4. Talking points should be actionable coaching tips
5. Use line breaks between dialogue sections
6. For objection handling, use OBJECTION: and RESPONSE: format
7. For branching, use IF YES / IF NO prefixes
8. Return ONLY valid JSON, no markdown fences or extra text`

var generateParams = openai.Params{
	Temperature: 0.7,
	MaxTokens:   4000,
}

// Prospect is the research a rep supplies about who they are about to
// call. Only blank fields fall back to generic defaults.
type Prospect struct {
	Name              string
	Title             string
	Company           string
	Industry          string
	CompanySize       string
	Location          string
	LinkedInSummary   string
	AdditionalContext string
}

// Completer is the model dependency; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, messages []openai.Message, params openai.Params) (string, error)
}

type Generator struct {
	llm    Completer
	logger *slog.Logger
}

func NewGenerator(llm Completer, logger *slog.Logger) *Generator {
	return &Generator{llm: llm, logger: logger}
}

// scriptPayload mirrors the JSON shape the prompt asks the model for.
type scriptPayload struct {
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Industry        string           `json:"industry"`
	CompanySize     string           `json:"company_size"`
	TargetLocation  string           `json:"target_location"`
	ProductName     string           `json:"product_name"`
	TargetRole      string           `json:"target_role"`
	DifficultyLevel string           `json:"difficulty_level"`
	Sections        []sectionPayload `json:"sections"`
}

type sectionPayload struct {
	SectionType   string   `json:"section_type"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	TalkingPoints []string `json:"talking_points"`
	Tips          string   `json:"tips"`
	OrderIndex    int      `json:"order_index"`
}

// Generate prompts the model with the prospect details and decodes the
// reply into a script ready to persist. IDs and timestamps are assigned
// by the store on insert, not here.
func (g *Generator) Generate(ctx context.Context, p Prospect) (*catalog.Script, error) {
	raw, err := g.llm.Complete(ctx, []openai.Message{
		{Role: "system", Content: generatorSystemPrompt},
		{Role: "user", Content: buildPrompt(p)},
	}, generateParams)
	if err != nil {
		return nil, fmt.Errorf("generate script: %w", err)
	}

	raw = stripFences(strings.TrimSpace(raw))

	var payload scriptPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		g.logger.Error("model returned undecodable script JSON", "error", err)
		return nil, fmt.Errorf("decode generated script: %w", err)
	}

	return payload.toScript(p), nil
}

func buildPrompt(p Prospect) string {
	return strings.NewReplacer(
		"{prospect_name}", fallback(p.Name, "Unknown"),
		"{prospect_title}", fallback(p.Title, "Procurement Leader"),
		"{prospect_company}", fallback(p.Company, "Unknown"),
		"{industry}", fallback(p.Industry, "general"),
		"{company_size}", fallback(p.CompanySize, "mid_market"),
		"{location}", fallback(p.Location, "US"),
		"{linkedin_summary}", fallback(p.LinkedInSummary, "Not provided"),
		"{additional_context}", fallback(p.AdditionalContext, "None"),
	).Replace(scriptPromptTemplate)
}

// stripFences removes the markdown code fence the model sometimes wraps
// its JSON in despite the instructions.
func stripFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = raw[i+1:]
	}
	if i := strings.LastIndex(raw, "```"); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSpace(raw)
}

// toScript fills gaps in the model's output from the prospect details,
// so a sloppy reply still yields a usable record.
func (p *scriptPayload) toScript(prospect Prospect) *catalog.Script {
	sc := &catalog.Script{
		Title:           p.Title,
		Description:     p.Description,
		Industry:        fallback(p.Industry, fallback(prospect.Industry, "general")),
		CompanySize:     fallback(p.CompanySize, fallback(prospect.CompanySize, "mid_market")),
		TargetLocation:  fallback(p.TargetLocation, fallback(prospect.Location, "US")),
		ProductName:     fallback(p.ProductName, "Nvelop"),
		TargetRole:      fallback(p.TargetRole, prospect.Title),
		DifficultyLevel: fallback(p.DifficultyLevel, "intermediate"),
	}
	for _, sec := range p.Sections {
		sc.Sections = append(sc.Sections, catalog.ScriptSection{
			SectionType:   fallback(sec.SectionType, "intro"),
			Title:         sec.Title,
			Content:       sec.Content,
			TalkingPoints: sec.TalkingPoints,
			Tips:          sec.Tips,
			OrderIndex:    sec.OrderIndex,
		})
	}
	return sc
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
