package registration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mcdev12/rosterpool/go/internal/models"
	"github.com/mcdev12/rosterpool/go/internal/sqlutil"
	"github.com/sqlc-dev/pqtype"
)

type Repository struct {
	q sqlutil.Querier
}

func NewRepository(q sqlutil.Querier) *Repository {
	return &Repository{q: q}
}

func (r *Repository) InsertRegistration(ctx context.Context, reg *models.Registration) error {
	alternates := make([]int64, len(reg.AlternateJerseys))
	for i, n := range reg.AlternateJerseys {
		alternates[i] = int64(n)
	}

	medical := pqtype.NullRawMessage{RawMessage: reg.Medical, Valid: len(reg.Medical) > 0}

	_, err := r.q.ExecContext(ctx, `
		INSERT INTO registrations
			(id, season_id, program_id, age_group_id, athlete_id, first_name, last_name,
			 birth_date, gender, preferred_jersey, alternate_jerseys, preferred_position,
			 parent_id, parent_name, parent_email, parent_phone, emergency_name, emergency_phone,
			 medical, waiver_accepted, waiver_accepted_at, amount_due, amount_paid, payment_method, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)`,
		reg.ID, reg.SeasonID, reg.ProgramID, reg.AgeGroupID, sqlutil.ToNullUUID(reg.AthleteID),
		reg.FirstName, reg.LastName, reg.BirthDate, reg.Gender,
		sqlutil.ToSqlInt32(reg.PreferredJersey), pq.Array(alternates),
		sqlutil.ToSqlString(reg.PreferredPosition),
		reg.ParentID, reg.ParentName, reg.ParentEmail, reg.ParentPhone,
		reg.EmergencyName, reg.EmergencyPhone, medical,
		reg.WaiverAccepted, sqlutil.ToSqlTime(reg.WaiverAcceptedAt),
		reg.AmountDue, reg.AmountPaid, reg.PaymentMethod, reg.Status)
	if err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

func (r *Repository) GetRegistration(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, season_id, program_id, age_group_id, athlete_id, first_name, last_name,
		       birth_date, gender, preferred_jersey, alternate_jerseys, preferred_position,
		       parent_id, parent_name, parent_email, parent_phone, emergency_name, emergency_phone,
		       medical, waiver_accepted, waiver_accepted_at, amount_due, amount_paid, payment_method,
		       status, created_at, updated_at
		FROM registrations WHERE id = $1`, id)

	var reg models.Registration
	var athleteID uuid.NullUUID
	var gender, parentPhone, emergencyName, emergencyPhone, paymentMethod sql.NullString
	var preferredJersey sql.NullInt32
	var preferredPosition sql.NullString
	var alternates []int64
	var medical pqtype.NullRawMessage
	var waiverAt sql.NullTime

	err := row.Scan(&reg.ID, &reg.SeasonID, &reg.ProgramID, &reg.AgeGroupID, &athleteID,
		&reg.FirstName, &reg.LastName, &reg.BirthDate, &gender,
		&preferredJersey, pq.Array(&alternates), &preferredPosition,
		&reg.ParentID, &reg.ParentName, &reg.ParentEmail, &parentPhone,
		&emergencyName, &emergencyPhone, &medical,
		&reg.WaiverAccepted, &waiverAt, &reg.AmountDue, &reg.AmountPaid, &paymentMethod,
		&reg.Status, &reg.CreatedAt, &reg.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("registration %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	reg.AthleteID = sqlutil.FromNullUUID(athleteID)
	reg.Gender = sqlutil.FromSqlString(gender, "")
	reg.ParentPhone = sqlutil.FromSqlString(parentPhone, "")
	reg.EmergencyName = sqlutil.FromSqlString(emergencyName, "")
	reg.EmergencyPhone = sqlutil.FromSqlString(emergencyPhone, "")
	reg.PaymentMethod = sqlutil.FromSqlString(paymentMethod, "")
	reg.PreferredJersey = sqlutil.FromSqlInt32(preferredJersey)
	reg.PreferredPosition = sqlutil.FromSqlStringPtr(preferredPosition)
	reg.WaiverAcceptedAt = sqlutil.FromSqlTime(waiverAt)
	if medical.Valid {
		reg.Medical = medical.RawMessage
	}
	reg.AlternateJerseys = make([]int, len(alternates))
	for i, n := range alternates {
		reg.AlternateJerseys[i] = int(n)
	}
	return &reg, nil
}

// UpdatePayment records the amount collected by the external payment
// provider. Payment fields are the only mutable fields besides status.
func (r *Repository) UpdatePayment(ctx context.Context, id uuid.UUID, amountPaid float64, method string) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE registrations
		SET amount_paid = $2, payment_method = $3, updated_at = now()
		WHERE id = $1 AND status = 'ACTIVE'`, id, amountPaid, method)
	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("registration %s not found or cancelled", id)
	}
	return nil
}
