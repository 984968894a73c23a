package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jromero/examcal/internal/app/models"
)

// ClassScheduleRepository handles database operations for weekly class slots
type ClassScheduleRepository struct {
	db *pgxpool.Pool
}

// NewClassScheduleRepository creates a new class schedule repository
func NewClassScheduleRepository(db *pgxpool.Pool) *ClassScheduleRepository {
	return &ClassScheduleRepository{db: db}
}

// GetByCohortAndProgram retrieves the weekly class slots of a cohort,
// restricted to courses of the given program.
func (r *ClassScheduleRepository) GetByCohortAndProgram(ctx context.Context, cohortID, programID int64) ([]*models.ClassSchedule, error) {
	query := `
		SELECT s.id, s.cohort_id, s.course_id, s.room_id, s.weekday, s.start_time, s.end_time
		FROM class_schedules s
		JOIN courses c ON c.id = s.course_id
		WHERE s.cohort_id = $1 AND c.program_id = $2
		ORDER BY s.course_id, s.weekday, s.start_time
	`

	rows, err := r.db.Query(ctx, query, cohortID, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.ClassSchedule
	for rows.Next() {
		var schedule models.ClassSchedule
		if err := rows.Scan(
			&schedule.ID,
			&schedule.CohortID,
			&schedule.CourseID,
			&schedule.RoomID,
			&schedule.Weekday,
			&schedule.StartTime,
			&schedule.EndTime,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, &schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return schedules, nil
}
