package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/gatepass/internal/gatepass/domain"
)

type scanEventsRepo struct {
	q dbtx
}

func (r *scanEventsRepo) CreateScanEvent(ctx context.Context, ev domain.ScanEvent) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO scan_events (id, code, outcome, station, at) VALUES (?, ?, ?, ?, ?)`,
		ev.ID,
		ev.Code,
		string(ev.Outcome),
		mapStringNull(ev.Station),
		formatTime(ev.At),
	)
	return mapConstraint(err)
}

func (r *scanEventsRepo) ListScanEventsByCode(ctx context.Context, code string) ([]domain.ScanEvent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, code, outcome, station, at FROM scan_events WHERE code = ? ORDER BY at ASC, id ASC`,
		code,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ScanEvent
	for rows.Next() {
		var (
			ev      domain.ScanEvent
			outcome string
			station sql.NullString
			at      string
		)
		if err := rows.Scan(&ev.ID, &ev.Code, &outcome, &station, &at); err != nil {
			return nil, err
		}
		ev.Outcome = domain.Outcome(outcome)
		ev.Station = mapNullString(station)
		if ev.At, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
