package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/scriptgen"
)

type personaJSON struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RoleTitle          string    `json:"role_title"`
	PersonalitySummary string    `json:"personality_summary"`
	SystemPrompt       string    `json:"system_prompt"`
	Difficulty         string    `json:"difficulty"`
	AvatarEmoji        string    `json:"avatar_emoji"`
	Traits             []string  `json:"traits"`
}

type scriptJSON struct {
	ID              uuid.UUID     `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	Industry        string        `json:"industry"`
	CompanySize     string        `json:"company_size"`
	TargetLocation  string        `json:"target_location"`
	ProductName     string        `json:"product_name"`
	TargetRole      string        `json:"target_role"`
	DifficultyLevel string        `json:"difficulty_level"`
	CreatedAt       time.Time     `json:"created_at"`
	Sections        []sectionJSON `json:"sections,omitempty"`
}

type sectionJSON struct {
	ID            uuid.UUID `json:"id"`
	ScriptID      uuid.UUID `json:"script_id"`
	SectionType   string    `json:"section_type"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	TalkingPoints []string  `json:"talking_points"`
	Tips          string    `json:"tips"`
	OrderIndex    int       `json:"order_index"`
}

func toPersonaJSON(p catalog.Persona) personaJSON {
	traits := p.Traits
	if traits == nil {
		traits = []string{}
	}
	return personaJSON{
		ID:                 p.ID,
		Name:               p.Name,
		RoleTitle:          p.RoleTitle,
		PersonalitySummary: p.PersonalitySummary,
		SystemPrompt:       p.SystemPrompt,
		Difficulty:         p.Difficulty,
		AvatarEmoji:        p.AvatarEmoji,
		Traits:             traits,
	}
}

func toScriptJSON(sc catalog.Script) scriptJSON {
	out := scriptJSON{
		ID:              sc.ID,
		Title:           sc.Title,
		Description:     sc.Description,
		Industry:        sc.Industry,
		CompanySize:     sc.CompanySize,
		TargetLocation:  sc.TargetLocation,
		ProductName:     sc.ProductName,
		TargetRole:      sc.TargetRole,
		DifficultyLevel: sc.DifficultyLevel,
		CreatedAt:       sc.CreatedAt,
	}
	for _, sec := range sc.Sections {
		points := sec.TalkingPoints
		if points == nil {
			points = []string{}
		}
		out.Sections = append(out.Sections, sectionJSON{
			ID:            sec.ID,
			ScriptID:      sec.ScriptID,
			SectionType:   sec.SectionType,
			Title:         sec.Title,
			Content:       sec.Content,
			TalkingPoints: points,
			Tips:          sec.Tips,
			OrderIndex:    sec.OrderIndex,
		})
	}
	return out
}

func (s *Server) listPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := s.catalog.ListPersonas(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]personaJSON, 0, len(personas))
	for _, p := range personas {
		out = append(out, toPersonaJSON(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) listScripts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.ScriptFilter{
		Industry:    q.Get("industry"),
		CompanySize: q.Get("company_size"),
		Location:    q.Get("location"),
		Search:      q.Get("search"),
	}

	scripts, err := s.catalog.ListScripts(r.Context(), filter)
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := make([]scriptJSON, 0, len(scripts))
	for _, sc := range scripts {
		out = append(out, toScriptJSON(sc))
	}
	writeJSON(w, http.StatusOK, out)
}

type filterOptionsJSON struct {
	Industries   []string `json:"industries"`
	CompanySizes []string `json:"company_sizes"`
	Locations    []string `json:"locations"`
}

func (s *Server) scriptFilters(w http.ResponseWriter, r *http.Request) {
	opts, err := s.catalog.ScriptFilterOptions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	out := filterOptionsJSON{
		Industries:   opts.Industries,
		CompanySizes: opts.CompanySizes,
		Locations:    opts.Locations,
	}
	if out.Industries == nil {
		out.Industries = []string{}
	}
	if out.CompanySizes == nil {
		out.CompanySizes = []string{}
	}
	if out.Locations == nil {
		out.Locations = []string{}
	}
	writeJSON(w, http.StatusOK, out)
}

type generateScriptRequest struct {
	ProspectName      string `json:"prospect_name"`
	ProspectTitle     string `json:"prospect_title"`
	ProspectCompany   string `json:"prospect_company"`
	Industry          string `json:"industry"`
	CompanySize       string `json:"company_size"`
	Location          string `json:"location"`
	LinkedInSummary   string `json:"linkedin_summary"`
	AdditionalContext string `json:"additional_context"`
}

// generateScript asks the model for a personalized script and stores it.
// Generation failures surface as 500 with the underlying reason, so the
// rep knows to retry rather than look for a missing script.
func (s *Server) generateScript(w http.ResponseWriter, r *http.Request) {
	var req generateScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	script, err := s.generator.Generate(r.Context(), scriptgen.Prospect{
		Name:              req.ProspectName,
		Title:             req.ProspectTitle,
		Company:           req.ProspectCompany,
		Industry:          req.Industry,
		CompanySize:       req.CompanySize,
		Location:          req.Location,
		LinkedInSummary:   req.LinkedInSummary,
		AdditionalContext: req.AdditionalContext,
	})
	if err != nil {
		s.logger.Error("script generation failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "AI generation failed: "+err.Error())
		return
	}

	stored, err := s.catalog.CreateScript(r.Context(), script)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toScriptJSON(*stored))
}

func (s *Server) getScript(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r, "scriptID")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid script id")
		return
	}
	script, err := s.catalog.GetScript(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toScriptJSON(*script))
}
