package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Domenick1991/flightbook/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.BookingDetail, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// Create inserts the booking and takes its seats off the flight in one
// transaction. The seat decrement is guarded by available_seats >= seats,
// so two concurrent bookings can never take the inventory negative.
func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - $2, updated_at = now()
		WHERE id=$1 AND available_seats >= $2`, booking.FlightID, booking.Seats)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrInsufficientSeats
	}

	if err := tx.QueryRow(ctx, `INSERT INTO bookings (reference, user_id, flight_id, seats, total_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`, booking.Reference, booking.UserID, booking.FlightID, booking.Seats, booking.TotalCents, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `SELECT id, reference, user_id, flight_id, seats, total_cents, status, created_at, updated_at FROM bookings WHERE id=$1`, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.FlightID, &b.Seats, &b.TotalCents, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

const bookingDetailColumns = `
	b.id, b.reference, b.user_id, b.flight_id, b.seats, b.total_cents, b.status, b.created_at, b.updated_at,
	f.id, f.origin, f.destination, f.date, f.price_cents, f.available_seats, f.created_at, f.updated_at,
	u.id, u.username, u.email, u.role, u.created_at, u.updated_at`

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingDetailColumns+`
		FROM bookings b
		LEFT JOIN flights f ON f.id = b.flight_id
		LEFT JOIN users u ON u.id = b.user_id
		ORDER BY b.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func (r *PGBookingRepository) ListByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingDetailColumns+`
		FROM bookings b
		LEFT JOIN flights f ON f.id = b.flight_id
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.user_id = $1
		ORDER BY b.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingDetails(rows)
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) (*domain.Booking, error) {
	row := r.db.QueryRow(ctx, `UPDATE bookings SET status=$1, updated_at=now() WHERE id=$2
		RETURNING id, reference, user_id, flight_id, seats, total_cents, status, created_at, updated_at`, status, id)
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Reference, &b.UserID, &b.FlightID, &b.Seats, &b.TotalCents, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Delete removes the booking and returns its seats to the flight in one
// transaction. When the flight has been deleted in the meantime the restore
// updates zero rows and the booking is still removed.
func (r *PGBookingRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var flightID int64
	var seats int
	if err := tx.QueryRow(ctx, `SELECT flight_id, seats FROM bookings WHERE id=$1`, id).Scan(&flightID, &seats); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + $2, updated_at = now() WHERE id=$1`, flightID, seats); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanBookingDetails(rows pgx.Rows) ([]domain.BookingDetail, error) {
	details := make([]domain.BookingDetail, 0)
	for rows.Next() {
		var (
			d domain.BookingDetail

			fID                  *int64
			fOrigin, fDest       *string
			fDate                *time.Time
			fPrice               *int64
			fSeats               *int
			fCreated, fUpdated   *time.Time

			uID                *int64
			uName, uEmail      *string
			uRole              *string
			uCreated, uUpdated *time.Time
		)
		if err := rows.Scan(
			&d.ID, &d.Reference, &d.UserID, &d.FlightID, &d.Seats, &d.TotalCents, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&fID, &fOrigin, &fDest, &fDate, &fPrice, &fSeats, &fCreated, &fUpdated,
			&uID, &uName, &uEmail, &uRole, &uCreated, &uUpdated,
		); err != nil {
			return nil, err
		}
		if fID != nil {
			d.Flight = &domain.Flight{
				ID:             *fID,
				Origin:         *fOrigin,
				Destination:    *fDest,
				Date:           *fDate,
				PriceCents:     *fPrice,
				AvailableSeats: *fSeats,
				CreatedAt:      *fCreated,
				UpdatedAt:      *fUpdated,
			}
		}
		if uID != nil {
			d.User = &domain.User{
				ID:        *uID,
				Username:  *uName,
				Email:     *uEmail,
				Role:      *uRole,
				CreatedAt: *uCreated,
				UpdatedAt: *uUpdated,
			}
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
