package repository

import (
	"context"
	"time"

	"talent-match/internal/database"
	"talent-match/internal/domain/application"

	"github.com/google/uuid"
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	CandidateID uuid.UUID
	Status      application.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Interview struct {
	ID            uuid.UUID
	ApplicationID uuid.UUID
	Type          application.InterviewType
	Result        application.InterviewResult
	ScheduledAt   time.Time
	UpdatedAt     time.Time
}

// StatusChange is an application transition applied alongside an
// interview result in the same transaction.
type StatusChange struct {
	ApplicationID uuid.UUID
	From          application.Status
	To            application.Status
}

type ApplicationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (Application, error)
	// UpdateStatus moves the application only if it is still in from.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (Application, error)
	FindInterview(ctx context.Context, id uuid.UUID) (Interview, error)
	UpdateInterviewResult(ctx context.Context, id uuid.UUID, from, to application.InterviewResult, change *StatusChange) (Interview, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, candidate_id, status, created_at, updated_at`

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, id uuid.UUID) (Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return Application{}, ErrApplicationNotFound
		}
		return Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (Application, error) {
	return updateApplicationStatus(ctx, r.db, id, from, to)
}

type queryRower interface {
	QueryRow(ctx context.Context, query string, args ...any) database.Row
}

func updateApplicationStatus(ctx context.Context, q queryRower, id uuid.UUID, from, to application.Status) (Application, error) {
	row := q.QueryRow(ctx,
		`UPDATE applications SET status = $3, updated_at = now()
		 WHERE id = $1 AND status = $2
		 RETURNING `+applicationColumns,
		id, string(from), string(to),
	)
	a, err := scanApplication(row)
	if err != nil {
		if database.IsNoRows(err) {
			return Application{}, ErrStatusConflict
		}
		return Application{}, err
	}
	return a, nil
}

func scanApplication(row database.Row) (Application, error) {
	var a Application
	var status string
	if err := row.Scan(&a.ID, &a.JobID, &a.CandidateID, &status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return Application{}, err
	}
	a.Status = application.Status(status)
	return a, nil
}

const interviewColumns = `id, application_id, interview_type, result, scheduled_at, updated_at`

func (r *PostgresApplicationRepository) FindInterview(ctx context.Context, id uuid.UUID) (Interview, error) {
	row := r.db.QueryRow(ctx, `SELECT `+interviewColumns+` FROM interviews WHERE id = $1`, id)
	iv, err := scanInterview(row)
	if err != nil {
		if database.IsNoRows(err) {
			return Interview{}, ErrInterviewNotFound
		}
		return Interview{}, err
	}
	return iv, nil
}

func (r *PostgresApplicationRepository) UpdateInterviewResult(ctx context.Context, id uuid.UUID, from, to application.InterviewResult, change *StatusChange) (Interview, error) {
	var out Interview
	err := database.WithTx(ctx, r.db, func(tx database.Tx) error {
		row := tx.QueryRow(ctx,
			`UPDATE interviews SET result = $3, updated_at = now()
			 WHERE id = $1 AND result = $2
			 RETURNING `+interviewColumns,
			id, string(from), string(to),
		)
		iv, err := scanInterview(row)
		if err != nil {
			if database.IsNoRows(err) {
				return ErrStatusConflict
			}
			return err
		}
		out = iv

		if change == nil {
			return nil
		}
		_, err = updateApplicationStatus(ctx, tx, change.ApplicationID, change.From, change.To)
		return err
	})
	if err != nil {
		return Interview{}, err
	}
	return out, nil
}

func scanInterview(row database.Row) (Interview, error) {
	var iv Interview
	var typ, result string
	if err := row.Scan(&iv.ID, &iv.ApplicationID, &typ, &result, &iv.ScheduledAt, &iv.UpdatedAt); err != nil {
		return Interview{}, err
	}
	iv.Type = application.InterviewType(typ)
	iv.Result = application.InterviewResult(result)
	return iv, nil
}
