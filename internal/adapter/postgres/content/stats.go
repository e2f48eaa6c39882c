package content

import (
	"context"
	"fmt"

	postgres "github.com/arina-fedorova/PolyLadder-sub002/internal/adapter/postgres"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// Aggregate reads behind the planner's gap checks. Each method is a single
// query; the planner decides priorities, this file only counts.

const missingOrthographySQL = `
SELECT lang
FROM unnest($1::text[]) AS lang
WHERE NOT EXISTS (SELECT 1 FROM content_drafts     WHERE data_type = 'ORTHOGRAPHY' AND language = lang)
  AND NOT EXISTS (SELECT 1 FROM content_candidates WHERE data_type = 'ORTHOGRAPHY' AND language = lang)
  AND NOT EXISTS (SELECT 1 FROM content_validated  WHERE data_type = 'ORTHOGRAPHY' AND language = lang)
  AND NOT EXISTS (SELECT 1 FROM content_approved   WHERE data_type = 'ORTHOGRAPHY' AND language = lang)
ORDER BY lang`

// LanguagesMissingOrthography returns supported languages with zero
// orthography content in any stage. In-flight drafts count as coverage so
// the same lesson is not planned twice.
func (r *Repo) LanguagesMissingOrthography(ctx context.Context) ([]domain.Language, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, missingOrthographySQL, languageStrings())
	if err != nil {
		return nil, fmt.Errorf("languages missing orthography: %w", err)
	}
	defer rows.Close()

	var langs []domain.Language
	for rows.Next() {
		var lang string
		if err := rows.Scan(&lang); err != nil {
			return nil, fmt.Errorf("languages missing orthography: %w", err)
		}
		langs = append(langs, domain.Language(lang))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("languages missing orthography: %w", err)
	}
	return langs, nil
}

const approvedCountsSQL = `
SELECT l.lang, v.level, COUNT(a.id)
FROM unnest($2::text[]) AS l(lang)
CROSS JOIN unnest($3::text[]) AS v(level)
LEFT JOIN content_approved a
    ON a.data_type = $1 AND a.language = l.lang AND a.level = v.level
GROUP BY l.lang, v.level
ORDER BY l.lang, v.level`

// ApprovedCounts returns per-(language, level) counts of approved content
// of one type. Pairs with zero approved items are included so the planner
// sees untouched levels as gaps, not blind spots.
func (r *Repo) ApprovedCounts(ctx context.Context, t domain.ContentType) ([]domain.LevelCount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, approvedCountsSQL, string(t), languageStrings(), contentLevelStrings())
	if err != nil {
		return nil, fmt.Errorf("approved %s counts: %w", t, err)
	}
	defer rows.Close()

	var counts []domain.LevelCount
	for rows.Next() {
		var (
			lang, level string
			count       int
		)
		if err := rows.Scan(&lang, &level, &count); err != nil {
			return nil, fmt.Errorf("approved %s counts: %w", t, err)
		}
		counts = append(counts, domain.LevelCount{
			Language: domain.Language(lang),
			Level:    domain.Level(level),
			Count:    count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("approved %s counts: %w", t, err)
	}
	return counts, nil
}

const underTargetMeaningsSQL = `
SELECT m.id, COALESCE(m.payload->>'word', ''), m.language, COALESCE(m.level, ''), COUNT(u.id)
FROM content_approved m
LEFT JOIN content_approved u
    ON u.data_type = 'UTTERANCE' AND u.payload->>'meaning_id' = m.id::text
WHERE m.data_type = 'MEANING'
GROUP BY m.id, m.language, m.level, m.created_at
HAVING COUNT(u.id) < $1
ORDER BY COUNT(u.id), m.created_at`

// UnderTargetMeanings returns approved meanings with fewer than target
// approved example utterances, least populated first.
func (r *Repo) UnderTargetMeanings(ctx context.Context, target int) ([]domain.MeaningCoverage, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, underTargetMeaningsSQL, target)
	if err != nil {
		return nil, fmt.Errorf("under-target meanings: %w", err)
	}
	defer rows.Close()

	var coverage []domain.MeaningCoverage
	for rows.Next() {
		var (
			c           domain.MeaningCoverage
			lang, level string
		)
		if err := rows.Scan(&c.MeaningID, &c.Word, &lang, &level, &c.UtteranceCount); err != nil {
			return nil, fmt.Errorf("under-target meanings: %w", err)
		}
		c.Language = domain.Language(lang)
		c.Level = domain.Level(level)
		coverage = append(coverage, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("under-target meanings: %w", err)
	}
	return coverage, nil
}

// CountByStage returns the number of items sitting in one stage partition.
func (r *Repo) CountByStage(ctx context.Context, stage domain.Stage) (int, error) {
	table, err := tableFor(stage)
	if err != nil {
		return 0, err
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	var count int
	if err := q.QueryRow(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)).Scan(&count); err != nil {
		return 0, fmt.Errorf("count %s: %w", stage, err)
	}
	return count, nil
}

func languageStrings() []string {
	langs := domain.SupportedLanguages()
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = string(l)
	}
	return out
}

// contentLevelStrings returns the CEFR levels leveled content targets.
// A0 is reserved for orthography lessons, which the planner tracks
// per-language rather than per-level.
func contentLevelStrings() []string {
	levels := domain.Levels()
	out := make([]string, 0, len(levels)-1)
	for _, l := range levels {
		if l == domain.LevelA0 {
			continue
		}
		out = append(out, string(l))
	}
	return out
}
