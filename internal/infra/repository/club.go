package repository

import (
	"context"

	"courtbook/internal/domain/club"
	"courtbook/internal/domain/tariff"
	"courtbook/internal/infra"
	"courtbook/internal/infra/db"
	"courtbook/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ClubReadRepository serves the command side's configuration snapshots. The
// engine reads current values per request and never caches them, so tariff
// or hours changes apply to the next request immediately.
type ClubReadRepository struct {
	db db.DBTX
}

func NewClubReadRepository(dbtx db.DBTX) *ClubReadRepository {
	return &ClubReadRepository{db: dbtx}
}

func (r *ClubReadRepository) CourtByID(ctx context.Context, id uuid.UUID) (*club.CourtSnapshot, error) {
	var snap club.CourtSnapshot
	err := r.db.QueryRow(ctx,
		`SELECT id, club_id, name, capacity, active FROM courts WHERE id = $1`,
		id,
	).Scan(&snap.ID, &snap.ClubID, &snap.Name, &snap.Capacity, &snap.Active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("court not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find court by ID", err)
	}
	return &snap, nil
}

func (r *ClubReadRepository) ClubConfigByID(ctx context.Context, id uuid.UUID) (*club.Config, error) {
	var (
		cfg      club.Config
		fallback pgtype.Int8
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, name, granularity_min, min_advance_min,
		        hold_self_service_min, hold_staff_min, fallback_hourly_cents
		 FROM clubs WHERE id = $1`,
		id,
	).Scan(&cfg.ID, &cfg.Name, &cfg.GranularityMin, &cfg.MinAdvanceMin,
		&cfg.HoldSelfServiceMin, &cfg.HoldStaffMin, &fallback)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("club not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find club by ID", err)
	}
	cfg.FallbackHourlyCents = pgconv.Int64PtrFromPgtype(fallback)

	rows, err := r.db.Query(ctx,
		`SELECT weekday, open_min, close_min FROM club_hours WHERE club_id = $1`,
		id,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load club hours", err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday, openMin, closeMin int
		if err := rows.Scan(&weekday, &openMin, &closeMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan club hours", err)
		}
		if weekday >= 0 && weekday < 7 {
			cfg.Hours[weekday] = club.DayHours{OpenMin: openMin, CloseMin: closeMin}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate club hours", err)
	}
	return &cfg, nil
}

// TariffRulesForCourt returns the club's rules that are either club-wide or
// specific to the court, in table order so earlier rules win within a scope.
func (r *ClubReadRepository) TariffRulesForCourt(ctx context.Context, clubID, courtID uuid.UUID) ([]tariff.Rule, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, court_id, hourly_rate_cents, weekday_mask, window_start_min, window_end_min
		 FROM tariff_rules
		 WHERE club_id = $1 AND (court_id IS NULL OR court_id = $2)
		 ORDER BY position, id`,
		clubID, courtID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load tariff rules", err)
	}
	defer rows.Close()

	var rules []tariff.Rule
	for rows.Next() {
		var (
			rule        tariff.Rule
			ruleCourtID pgtype.UUID
			mask        int
		)
		if err := rows.Scan(&rule.ID, &ruleCourtID, &rule.HourlyRateCents,
			&mask, &rule.WindowStartMin, &rule.WindowEndMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tariff rule", err)
		}
		rule.CourtID = pgconv.UUIDPtrFromPgtype(ruleCourtID)
		rule.Weekdays = tariff.WeekdaySet(mask)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate tariff rules", err)
	}
	return rules, nil
}
