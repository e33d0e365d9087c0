package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nvelop/pitchdrill/internal/catalog"
	"github.com/nvelop/pitchdrill/internal/roleplay"
)

// ListPersonas returns all personas ordered by difficulty then name.
func (s *Store) ListPersonas(ctx context.Context) ([]catalog.Persona, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, name, role_title, personality_summary, system_prompt, difficulty, avatar_emoji, traits
		FROM personas
		ORDER BY CASE difficulty WHEN 'easy' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END, name`)
	if err != nil {
		return nil, fmt.Errorf("list personas: %w", err)
	}
	defer rows.Close()

	var personas []catalog.Persona
	for rows.Next() {
		var p catalog.Persona
		if err := rows.Scan(&p.ID, &p.Name, &p.RoleTitle, &p.PersonalitySummary, &p.SystemPrompt, &p.Difficulty, &p.AvatarEmoji, &p.Traits); err != nil {
			return nil, fmt.Errorf("scan persona: %w", err)
		}
		personas = append(personas, p)
	}
	return personas, rows.Err()
}

func (s *Store) GetPersona(ctx context.Context, id uuid.UUID) (*catalog.Persona, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, role_title, personality_summary, system_prompt, difficulty, avatar_emoji, traits
		FROM personas WHERE id = $1`, id)

	var p catalog.Persona
	err := row.Scan(&p.ID, &p.Name, &p.RoleTitle, &p.PersonalitySummary, &p.SystemPrompt, &p.Difficulty, &p.AvatarEmoji, &p.Traits)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, roleplay.ErrPersonaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get persona: %w", err)
	}
	return &p, nil
}

// ListScripts returns scripts matching the filter, without their
// sections, newest first. A zero filter returns everything.
func (s *Store) ListScripts(ctx context.Context, f catalog.ScriptFilter) ([]catalog.Script, error) {
	query := `
		SELECT id, title, description, industry, company_size, target_location, product_name, target_role, difficulty_level, created_at
		FROM scripts`

	var conds []string
	var args []any
	if f.Industry != "" {
		args = append(args, f.Industry)
		conds = append(conds, fmt.Sprintf("industry = $%d", len(args)))
	}
	if f.CompanySize != "" {
		args = append(args, f.CompanySize)
		conds = append(conds, fmt.Sprintf("company_size = $%d", len(args)))
	}
	if f.Location != "" {
		args = append(args, "%"+f.Location+"%")
		conds = append(conds, fmt.Sprintf("target_location ILIKE $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scripts: %w", err)
	}
	defer rows.Close()

	var scripts []catalog.Script
	for rows.Next() {
		var sc catalog.Script
		if err := rows.Scan(&sc.ID, &sc.Title, &sc.Description, &sc.Industry, &sc.CompanySize, &sc.TargetLocation, &sc.ProductName, &sc.TargetRole, &sc.DifficultyLevel, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan script: %w", err)
		}
		scripts = append(scripts, sc)
	}
	return scripts, rows.Err()
}

// GetScript returns one script with its sections in display order.
func (s *Store) GetScript(ctx context.Context, id uuid.UUID) (*catalog.Script, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, description, industry, company_size, target_location, product_name, target_role, difficulty_level, created_at
		FROM scripts WHERE id = $1`, id)

	var sc catalog.Script
	err := row.Scan(&sc.ID, &sc.Title, &sc.Description, &sc.Industry, &sc.CompanySize, &sc.TargetLocation, &sc.ProductName, &sc.TargetRole, &sc.DifficultyLevel, &sc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, roleplay.ErrScriptNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get script: %w", err)
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, script_id, section_type, title, content, talking_points, tips, order_index
		FROM script_sections
		WHERE script_id = $1
		ORDER BY order_index`, id)
	if err != nil {
		return nil, fmt.Errorf("list script sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sec catalog.ScriptSection
		if err := rows.Scan(&sec.ID, &sec.ScriptID, &sec.SectionType, &sec.Title, &sec.Content, &sec.TalkingPoints, &sec.Tips, &sec.OrderIndex); err != nil {
			return nil, fmt.Errorf("scan script section: %w", err)
		}
		sc.Sections = append(sc.Sections, sec)
	}
	return &sc, rows.Err()
}

// ScriptFilterOptions returns the distinct industry, company size and
// location values across all stored scripts.
func (s *Store) ScriptFilterOptions(ctx context.Context) (*catalog.FilterOptions, error) {
	opts := &catalog.FilterOptions{}
	for _, q := range []struct {
		column string
		dest   *[]string
	}{
		{"industry", &opts.Industries},
		{"company_size", &opts.CompanySizes},
		{"target_location", &opts.Locations},
	} {
		rows, err := s.pool.Query(ctx, fmt.Sprintf(
			`SELECT DISTINCT %s FROM scripts ORDER BY %s`, q.column, q.column))
		if err != nil {
			return nil, fmt.Errorf("distinct %s: %w", q.column, err)
		}
		for rows.Next() {
			var v string
			if err := rows.Scan(&v); err != nil {
				rows.Close()
				return nil, fmt.Errorf("scan %s: %w", q.column, err)
			}
			*q.dest = append(*q.dest, v)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("distinct %s: %w", q.column, err)
		}
	}
	return opts, nil
}

// CreateScript inserts a script and its sections in one transaction and
// returns the stored record, sections in display order.
func (s *Store) CreateScript(ctx context.Context, sc *catalog.Script) (*catalog.Script, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	scriptID := uuid.New()
	_, err = tx.Exec(ctx, `
		INSERT INTO scripts (id, title, description, industry, company_size, target_location, product_name, target_role, difficulty_level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
		scriptID, sc.Title, sc.Description, sc.Industry, sc.CompanySize, sc.TargetLocation, sc.ProductName, sc.TargetRole, sc.DifficultyLevel,
	)
	if err != nil {
		return nil, fmt.Errorf("insert script: %w", err)
	}
	for _, sec := range sc.Sections {
		_, err := tx.Exec(ctx, `
			INSERT INTO script_sections (id, script_id, section_type, title, content, talking_points, tips, order_index)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), scriptID, sec.SectionType, sec.Title, sec.Content, sec.TalkingPoints, sec.Tips, sec.OrderIndex,
		)
		if err != nil {
			return nil, fmt.Errorf("insert section %q: %w", sec.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetScript(ctx, scriptID)
}

// SeedCatalog inserts the built-in personas and scripts if the catalog is
// empty. Safe to call on every startup.
func (s *Store) SeedCatalog(ctx context.Context) error {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM personas`).Scan(&count); err != nil {
		return fmt.Errorf("count personas: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range catalog.SeedPersonas() {
		_, err := tx.Exec(ctx, `
			INSERT INTO personas (id, name, role_title, personality_summary, system_prompt, difficulty, avatar_emoji, traits)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			uuid.New(), p.Name, p.RoleTitle, p.PersonalitySummary, p.SystemPrompt, p.Difficulty, p.AvatarEmoji, p.Traits,
		)
		if err != nil {
			return fmt.Errorf("insert persona %q: %w", p.Name, err)
		}
	}

	for _, sc := range catalog.SeedScripts() {
		scriptID := uuid.New()
		_, err := tx.Exec(ctx, `
			INSERT INTO scripts (id, title, description, industry, company_size, target_location, product_name, target_role, difficulty_level, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())`,
			scriptID, sc.Title, sc.Description, sc.Industry, sc.CompanySize, sc.TargetLocation, sc.ProductName, sc.TargetRole, sc.DifficultyLevel,
		)
		if err != nil {
			return fmt.Errorf("insert script %q: %w", sc.Title, err)
		}
		for _, sec := range sc.Sections {
			_, err := tx.Exec(ctx, `
				INSERT INTO script_sections (id, script_id, section_type, title, content, talking_points, tips, order_index)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
				uuid.New(), scriptID, sec.SectionType, sec.Title, sec.Content, sec.TalkingPoints, sec.Tips, sec.OrderIndex,
			)
			if err != nil {
				return fmt.Errorf("insert section %q: %w", sec.Title, err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
