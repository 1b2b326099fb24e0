package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/salonbook/internal/domain/errors"
	"github.com/polkiloo/salonbook/internal/domain/model"
	"github.com/polkiloo/salonbook/internal/domain/repository"
)

const (
	uniqueViolation   = "23505"
	numericOutOfRange = "22003"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type sessionRepository struct {
	storage *Storage
}

type appointmentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("postgres storage ready")
	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Users returns the credential store.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

// Sessions returns the session table.
func (s *Storage) Sessions() repository.SessionRepository {
	return &sessionRepository{storage: s}
}

// Appointments returns the appointment ledger.
func (s *Storage) Appointments() repository.AppointmentRepository {
	return &appointmentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            phone TEXT NOT NULL,
            password_hash TEXT NOT NULL,
            points BIGINT NOT NULL DEFAULT 0,
            appointment_ids TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`ALTER TABLE users ALTER COLUMN points TYPE BIGINT`,
		`CREATE TABLE IF NOT EXISTS sessions (
            token TEXT PRIMARY KEY,
            user_id TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS appointments (
            id TEXT PRIMARY KEY,
            user_id TEXT NOT NULL REFERENCES users(id),
            date TEXT NOT NULL,
            time TEXT NOT NULL,
            services JSONB NOT NULL,
            total DOUBLE PRECISION NOT NULL,
            payment_method TEXT NOT NULL,
            special_requests TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            images TEXT[] NOT NULL DEFAULT '{}',
            created_at TIMESTAMPTZ NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE INDEX IF NOT EXISTS idx_appointments_user ON appointments(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

// --- UserRepository implementation ---

const userColumns = `id, name, email, phone, password_hash, points, appointment_ids, created_at, updated_at`

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.Points, &u.AppointmentIDs, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if u.AppointmentIDs == nil {
		u.AppointmentIDs = []string{}
	}
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (*model.User, error) {
	const query = `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	ids := user.AppointmentIDs
	if ids == nil {
		ids = []string{}
	}
	_, err := r.storage.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.Phone, user.PasswordHash, user.Points, ids, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	created := user.Clone()
	created.AppointmentIDs = ids
	return created, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) UpdateProfile(ctx context.Context, id string, upd model.ProfileUpdate, at time.Time) (*model.User, error) {
	const query = `UPDATE users
                   SET name=COALESCE($2, name), email=COALESCE($3, email), phone=COALESCE($4, phone), updated_at=$5
                   WHERE id=$1
                   RETURNING ` + userColumns
	u, err := scanUser(r.storage.pool.QueryRow(ctx, query, id, upd.Name, upd.Email, upd.Phone, at))
	if err != nil && isUniqueViolation(err) {
		return nil, domainErrors.ErrAlreadyExists
	}
	return u, err
}

// --- SessionRepository implementation ---

func (r *sessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `INSERT INTO sessions (token, user_id, created_at) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, session.Token, session.UserID, session.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*model.Session, error) {
	const query = `SELECT token, user_id, created_at FROM sessions WHERE token=$1`
	var s model.Session
	if err := r.storage.pool.QueryRow(ctx, query, token).Scan(&s.Token, &s.UserID, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token=$1`
	if _, err := r.storage.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	const query = `DELETE FROM sessions WHERE created_at < $1`
	tag, err := r.storage.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// --- AppointmentRepository implementation ---

const appointmentColumns = `id, user_id, date, time, services, total, payment_method, special_requests, status, images, created_at, updated_at`

func scanAppointment(row rowScanner) (*model.Appointment, error) {
	var (
		a        model.Appointment
		services []byte
	)
	err := row.Scan(&a.ID, &a.UserID, &a.Date, &a.Time, &services, &a.Total, &a.PaymentMethod,
		&a.SpecialRequests, &a.Status, &a.Images, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(services, &a.Services); err != nil {
		return nil, fmt.Errorf("decode services of appointment %s: %w", a.ID, err)
	}
	if a.Images == nil {
		a.Images = []string{}
	}
	return &a, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment, points int) (*model.Appointment, error) {
	services, err := json.Marshal(appointment.Services)
	if err != nil {
		return nil, fmt.Errorf("encode services: %w", err)
	}
	images := appointment.Images
	if images == nil {
		images = []string{}
	}

	err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const creditOwner = `UPDATE users
                             SET points = points + $2, appointment_ids = array_append(appointment_ids, $3)
                             WHERE id=$1`
		if points < 0 {
			return model.ErrPointsLimit
		}
		tag, err := tx.Exec(ctx, creditOwner, appointment.UserID, points, appointment.ID)
		if hasCode(err, numericOutOfRange) {
			return model.ErrPointsLimit
		}
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrNotFound
		}

		const insert = `INSERT INTO appointments (` + appointmentColumns + `)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
		_, err = tx.Exec(ctx, insert,
			appointment.ID, appointment.UserID, appointment.Date, appointment.Time, services, appointment.Total,
			appointment.PaymentMethod, appointment.SpecialRequests, appointment.Status, images,
			appointment.CreatedAt, appointment.UpdatedAt)
		if err != nil && isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	created := appointment.Clone()
	created.Images = images
	return created, nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE id=$1`
	return scanAppointment(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID string) ([]model.Appointment, error) {
	const query = `SELECT ` + appointmentColumns + ` FROM appointments WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []model.Appointment{}
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, at time.Time) (*model.Appointment, error) {
	const query = `UPDATE appointments SET status=$2, updated_at=$3 WHERE id=$1 RETURNING ` + appointmentColumns
	return scanAppointment(r.storage.pool.QueryRow(ctx, query, id, status, at))
}

func (r *appointmentRepository) AddImage(ctx context.Context, id, url string, at time.Time) (*model.Appointment, error) {
	const query = `UPDATE appointments SET images=array_append(images, $2), updated_at=$3 WHERE id=$1 RETURNING ` + appointmentColumns
	return scanAppointment(r.storage.pool.QueryRow(ctx, query, id, url, at))
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

var _ repository.Factory = (*Storage)(nil)
