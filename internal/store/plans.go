package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrPlanNotFound is returned when a plan doesn't exist
var ErrPlanNotFound = errors.New("plan not found")

// SavePlan writes a plan and all of its weeks and workouts in one
// transaction, replacing any existing plan with the same ID.
func (db *DB) SavePlan(p *Plan) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO plans (id, name, goal, total_weeks, race_week, created_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			goal = excluded.goal,
			total_weeks = excluded.total_weeks,
			race_week = excluded.race_week
	`, p.ID, p.Name, p.Goal, p.TotalWeeks, p.RaceWeek)
	if err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}

	// Weeks and workouts are replaced wholesale. Simpler than diffing
	// and plans are small.
	if _, err := tx.Exec(`DELETE FROM plan_weeks WHERE plan_id = ?`, p.ID); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM plan_workouts WHERE plan_id = ?`, p.ID); err != nil {
		return err
	}

	for _, w := range p.Weeks {
		_, err = tx.Exec(`
			INSERT INTO plan_weeks (plan_id, week_number, phase, start_date, end_date, target_volume_km, is_recovery_week)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, w.WeekNumber, w.Phase, w.StartDate.UTC().Format(dateLayout), w.EndDate.UTC().Format(dateLayout), w.TargetVolumeKm, w.IsRecoveryWeek)
		if err != nil {
			return fmt.Errorf("saving week %d: %w", w.WeekNumber, err)
		}

		for _, wo := range w.Workouts {
			_, err = tx.Exec(`
				INSERT INTO plan_workouts (id, plan_id, week_number, date, type, distance_km, duration_minutes, description)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, wo.ID, p.ID, w.WeekNumber, wo.Date.UTC().Format(dateLayout), wo.Type, wo.DistanceKm, wo.DurationMinutes, wo.Description)
			if err != nil {
				return fmt.Errorf("saving workout %s: %w", wo.ID, err)
			}
		}
	}

	return tx.Commit()
}

// GetPlan retrieves a plan with its weeks and workouts assembled
func (db *DB) GetPlan(id string) (*Plan, error) {
	row := db.QueryRow(`
		SELECT id, name, goal, total_weeks, race_week
		FROM plans
		WHERE id = ?
	`, id)

	var p Plan
	err := row.Scan(&p.ID, &p.Name, &p.Goal, &p.TotalWeeks, &p.RaceWeek)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := db.loadWeeks(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPlans returns all plans, most recently created first, without
// their weeks loaded.
func (db *DB) ListPlans() ([]Plan, error) {
	rows, err := db.Query(`
		SELECT id, name, goal, total_weeks, race_week
		FROM plans
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		var p Plan
		if err := rows.Scan(&p.ID, &p.Name, &p.Goal, &p.TotalWeeks, &p.RaceWeek); err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan and its weeks and workouts
func (db *DB) DeletePlan(id string) error {
	res, err := db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (db *DB) loadWeeks(p *Plan) error {
	rows, err := db.Query(`
		SELECT week_number, phase, start_date, end_date, target_volume_km, is_recovery_week
		FROM plan_weeks
		WHERE plan_id = ?
		ORDER BY week_number ASC
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	// Index map instead of pointers: appending to p.Weeks can move the
	// backing array.
	weekIndex := map[int]int{}
	for rows.Next() {
		var w PlanWeek
		var startStr, endStr string
		if err := rows.Scan(&w.WeekNumber, &w.Phase, &startStr, &endStr, &w.TargetVolumeKm, &w.IsRecoveryWeek); err != nil {
			return err
		}
		if w.StartDate, err = time.ParseInLocation(dateLayout, startStr, time.UTC); err != nil {
			return fmt.Errorf("parsing week start %q: %w", startStr, err)
		}
		if w.EndDate, err = time.ParseInLocation(dateLayout, endStr, time.UTC); err != nil {
			return fmt.Errorf("parsing week end %q: %w", endStr, err)
		}
		w.PlanID = p.ID
		p.Weeks = append(p.Weeks, w)
		weekIndex[w.WeekNumber] = len(p.Weeks) - 1
	}
	if err := rows.Err(); err != nil {
		return err
	}

	woRows, err := db.Query(`
		SELECT id, week_number, date, type, distance_km, duration_minutes, description
		FROM plan_workouts
		WHERE plan_id = ?
		ORDER BY date ASC, id ASC
	`, p.ID)
	if err != nil {
		return err
	}
	defer woRows.Close()

	for woRows.Next() {
		var wo PlanWorkout
		var weekNumber int
		var dateStr string
		if err := woRows.Scan(&wo.ID, &weekNumber, &dateStr, &wo.Type, &wo.DistanceKm, &wo.DurationMinutes, &wo.Description); err != nil {
			return err
		}
		if wo.Date, err = time.ParseInLocation(dateLayout, dateStr, time.UTC); err != nil {
			return fmt.Errorf("parsing workout date %q: %w", dateStr, err)
		}
		wo.PlanID = p.ID
		wo.WeekNumber = weekNumber
		if idx, ok := weekIndex[weekNumber]; ok {
			p.Weeks[idx].Workouts = append(p.Weeks[idx].Workouts, wo)
		}
	}
	return woRows.Err()
}
