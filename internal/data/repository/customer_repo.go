package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"food-delivery/internal/data/entity"
	"food-delivery/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrCustomerNotFound is returned by writes that target a missing row.
// Reads return (nil, nil) instead.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrStaleCustomer is returned by Update when the row changed after the
// caller read it.
var ErrStaleCustomer = errors.New("customer was modified concurrently")

// DuplicateIdentityError reports which unique identity field collided.
type DuplicateIdentityError struct {
	Field string // "email" or "phone"
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("%s already registered", e.Field)
}

// CustomerFilter narrows admin listings. Nil fields are ignored.
type CustomerFilter struct {
	IsVerified *bool
	IsActive   *bool
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)
	FindByIdentity(ctx context.Context, email, phone string) (*entity.Customer, error)
	FindByEmailVerificationToken(ctx context.Context, token string, now time.Time) (*entity.Customer, error)
	FindByValidOTP(ctx context.Context, email, phone, code string, now time.Time) (*entity.Customer, error)
	FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.Customer, error)
	ExistsByIdentity(ctx context.Context, email, phone string) (bool, error)
	FindAll(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, error)
	Count(ctx context.Context, filter CustomerFilter) (int64, error)
	Update(ctx context.Context, customer *entity.Customer) error
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCustomerRepository(db database.PgxIface, log *zap.Logger) CustomerRepository {
	return &customerRepository{
		db:  db,
		log: log.With(zap.String("repository", "customer")),
	}
}

const customerColumns = `
	id, name, email, phone, password, profile_image, language, role,
	is_verified, is_active, addresses, default_address_id,
	email_verification_token, email_verification_expires,
	reset_password_token, reset_password_expires, otp_code, otp_expires,
	notification_preferences, fcm_token, total_orders, total_spent,
	last_login, created_at, updated_at, version`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row rowScanner) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.PasswordHash,
		&c.ProfileImage,
		&c.Language,
		&c.Role,
		&c.IsVerified,
		&c.IsActive,
		&c.Addresses,
		&c.DefaultAddressID,
		&c.EmailVerificationToken,
		&c.EmailVerificationExpires,
		&c.ResetPasswordToken,
		&c.ResetPasswordExpires,
		&c.OTPCode,
		&c.OTPExpires,
		&c.NotificationPreferences,
		&c.FCMToken,
		&c.TotalOrders,
		&c.TotalSpent,
		&c.LastLogin,
		&c.CreatedAt,
		&c.UpdatedAt,
		&c.Version,
	)
	if err != nil {
		return nil, err
	}
	if c.Addresses == nil {
		c.Addresses = []entity.Address{}
	}
	return &c, nil
}

// Create inserts a new customer. A unique violation is reported as
// *DuplicateIdentityError.
func (r *customerRepository) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26)
	`

	_, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.PasswordHash,
		c.ProfileImage,
		c.Language,
		c.Role,
		c.IsVerified,
		c.IsActive,
		addressesOrEmpty(c.Addresses),
		c.DefaultAddressID,
		c.EmailVerificationToken,
		c.EmailVerificationExpires,
		c.ResetPasswordToken,
		c.ResetPasswordExpires,
		c.OTPCode,
		c.OTPExpires,
		c.NotificationPreferences,
		c.FCMToken,
		c.TotalOrders,
		c.TotalSpent,
		c.LastLogin,
		c.CreatedAt,
		c.UpdatedAt,
		c.Version,
	)
	if err != nil {
		if dup := duplicateIdentity(err); dup != nil {
			return dup
		}
		r.log.Error("Failed to create customer", zap.Error(err), zap.String("customer_id", c.ID.String()))
		return fmt.Errorf("create customer %s: %w", c.ID.String(), err)
	}

	return nil
}

func (r *customerRepository) findOne(ctx context.Context, op, where string, args ...any) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ` + where + ` LIMIT 1`

	customer, err := scanCustomer(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find customer", zap.Error(err), zap.String("lookup", op))
		return nil, fmt.Errorf("find customer by %s: %w", op, err)
	}

	return customer, nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	return r.findOne(ctx, "id", `id = $1`, id)
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	return r.findOne(ctx, "email", `email = $1`, email)
}

// FindByIdentity matches on email or phone; empty values never match.
// An email match wins over a phone match.
func (r *customerRepository) FindByIdentity(ctx context.Context, email, phone string) (*entity.Customer, error) {
	return r.findOne(ctx, "identity",
		`(($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2))
		 ORDER BY (email = $1) DESC`,
		email, phone)
}

func (r *customerRepository) FindByEmailVerificationToken(ctx context.Context, token string, now time.Time) (*entity.Customer, error) {
	return r.findOne(ctx, "verification token",
		`email_verification_token = $1 AND email_verification_expires > $2`,
		token, now)
}

func (r *customerRepository) FindByValidOTP(ctx context.Context, email, phone, code string, now time.Time) (*entity.Customer, error) {
	return r.findOne(ctx, "otp",
		`(($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2))
		 AND otp_code = $3 AND otp_expires > $4`,
		email, phone, code, now)
}

func (r *customerRepository) FindByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.Customer, error) {
	return r.findOne(ctx, "reset token",
		`reset_password_token = $1 AND reset_password_expires > $2`,
		tokenHash, now)
}

func (r *customerRepository) ExistsByIdentity(ctx context.Context, email, phone string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE ($1 <> '' AND email = $1) OR ($2 <> '' AND phone = $2)
		)
	`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email, phone).Scan(&exists); err != nil {
		r.log.Error("Failed to check customer existence", zap.Error(err))
		return false, fmt.Errorf("check customer exists: %w", err)
	}

	return exists, nil
}

func filterClause(filter CustomerFilter, args []any) (string, []any) {
	var conds []string
	if filter.IsVerified != nil {
		args = append(args, *filter.IsVerified)
		conds = append(conds, fmt.Sprintf("is_verified = $%d", len(args)))
	}
	if filter.IsActive != nil {
		args = append(args, *filter.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// FindAll retrieves a page of customers, newest first
func (r *customerRepository) FindAll(ctx context.Context, filter CustomerFilter, limit, offset int) ([]*entity.Customer, error) {
	where, args := filterClause(filter, nil)
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM customers%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		customerColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list customers",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all customers limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	customers := make([]*entity.Customer, 0, limit)
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			r.log.Error("Failed to scan customer row", zap.Error(err))
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Count(ctx context.Context, filter CustomerFilter) (int64, error) {
	where, args := filterClause(filter, nil)

	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM customers`+where, args...).Scan(&count); err != nil {
		r.log.Error("Database error counting customers", zap.Error(err))
		return 0, fmt.Errorf("count customers: %w", err)
	}

	return count, nil
}

// Update saves the whole record in one statement, provided the stored
// version still matches c.Version. On success c.Version is advanced.
func (r *customerRepository) Update(ctx context.Context, c *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, email = $3, phone = $4, password = $5, profile_image = $6,
		    language = $7, role = $8, is_verified = $9, is_active = $10,
		    addresses = $11, default_address_id = $12,
		    email_verification_token = $13, email_verification_expires = $14,
		    reset_password_token = $15, reset_password_expires = $16,
		    otp_code = $17, otp_expires = $18,
		    notification_preferences = $19, fcm_token = $20,
		    total_orders = $21, total_spent = $22, last_login = $23,
		    updated_at = $24, version = version + 1
		WHERE id = $1 AND version = $25
	`

	result, err := r.db.Exec(ctx, query,
		c.ID,
		c.Name,
		c.Email,
		c.Phone,
		c.PasswordHash,
		c.ProfileImage,
		c.Language,
		c.Role,
		c.IsVerified,
		c.IsActive,
		addressesOrEmpty(c.Addresses),
		c.DefaultAddressID,
		c.EmailVerificationToken,
		c.EmailVerificationExpires,
		c.ResetPasswordToken,
		c.ResetPasswordExpires,
		c.OTPCode,
		c.OTPExpires,
		c.NotificationPreferences,
		c.FCMToken,
		c.TotalOrders,
		c.TotalSpent,
		c.LastLogin,
		c.UpdatedAt,
		c.Version,
	)
	if err != nil {
		if dup := duplicateIdentity(err); dup != nil {
			return dup
		}
		r.log.Error("Failed to update customer",
			zap.Error(err),
			zap.String("customer_id", c.ID.String()),
		)
		return fmt.Errorf("update customer %s: %w", c.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return r.missOrStale(ctx, c.ID)
	}

	c.Version++
	return nil
}

// missOrStale explains an UPDATE that matched no row.
func (r *customerRepository) missOrStale(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check customer %s: %w", id.String(), err)
	}
	if !exists {
		return ErrCustomerNotFound
	}

	r.log.Warn("Stale customer update rejected", zap.String("customer_id", id.String()))
	return ErrStaleCustomer
}

// RecordLogin writes last_login only and does not advance the version.
func (r *customerRepository) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	result, err := r.db.Exec(ctx, `UPDATE customers SET last_login = $2 WHERE id = $1`, id, at)
	if err != nil {
		r.log.Error("Failed to record login", zap.Error(err), zap.String("customer_id", id.String()))
		return fmt.Errorf("record login %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete customer", zap.Error(err), zap.String("id", id.String()))
		return fmt.Errorf("delete customer %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	r.log.Info("Customer deleted", zap.String("id", id.String()))
	return nil
}

func addressesOrEmpty(addresses []entity.Address) []entity.Address {
	if addresses == nil {
		return []entity.Address{}
	}
	return addresses
}

// duplicateIdentity maps a unique violation on email/phone to a typed error.
func duplicateIdentity(err error) *DuplicateIdentityError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return &DuplicateIdentityError{Field: "email"}
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return &DuplicateIdentityError{Field: "phone"}
	default:
		return nil
	}
}
