package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"customer-service/internal/domain/customer"
	"customer-service/internal/pkg/apperrors"

	"github.com/jackc/pgx/v5"
)

const (
	customerColumns = `id, name, last_name, national_id, email, created_at, updated_at`

	insertCustomerQuery = `
        INSERT INTO customers (name, last_name, national_id, email, created_at, updated_at)
        VALUES ($1, $2, $3, $4, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	updateCustomerQuery = `
        UPDATE customers
        SET name = $1,
            last_name = $2,
            national_id = $3,
            email = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING updated_at`

	findCustomerByIDQuery = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	findCustomerByEmailQuery = `SELECT ` + customerColumns + ` FROM customers WHERE email = $1`

	findCustomerByNationalIDQuery = `SELECT ` + customerColumns + ` FROM customers WHERE national_id = $1`

	findAllCustomersQuery = `SELECT ` + customerColumns + ` FROM customers ORDER BY id DESC`

	customerExistsQuery = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

	deleteCustomerQuery = `DELETE FROM customers WHERE id = $1`
)

type CustomerRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ customer.CustomerRepository = (*CustomerRepository)(nil)

func NewCustomerRepository(db DBPool, logger *slog.Logger) *CustomerRepository {
	if db == nil {
		panic("DBPool cannot be nil for CustomerRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerRepository, using default stderr handler")
	}
	return &CustomerRepository{
		db:     db,
		logger: logger.With("component", "CustomerRepository"),
	}
}

func (r *CustomerRepository) Save(ctx context.Context, cust *customer.Customer) error {
	if cust == nil {
		return fmt.Errorf("%w: customer cannot be nil", apperrors.ErrInvalidArgument)
	}

	if cust.ID == 0 {
		return r.createCustomer(ctx, cust)
	}
	return r.updateCustomer(ctx, cust)
}

func (r *CustomerRepository) createCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	start := time.Now()
	defer func() { observeQuery("insert_customer", start, err) }()

	r.logger.InfoContext(ctx, "Attempting to insert new customer")

	err = r.db.QueryRow(ctx, insertCustomerQuery,
		cust.Name,
		cust.LastName,
		cust.NationalID,
		cust.Email,
	).Scan(
		&cust.ID,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert customer due to unique constraint violation")
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert customer: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Customer inserted successfully", slog.Int64("customerID", cust.ID))
	return nil
}

func (r *CustomerRepository) updateCustomer(ctx context.Context, cust *customer.Customer) (err error) {
	start := time.Now()
	defer func() { observeQuery("update_customer", start, err) }()

	logger := r.logger.With(slog.Int64("customerID", cust.ID))
	logger.InfoContext(ctx, "Attempting to update customer")

	err = r.db.QueryRow(ctx, updateCustomerQuery,
		cust.Name,
		cust.LastName,
		cust.NationalID,
		cust.Email,
		cust.ID,
	).Scan(&cust.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.WarnContext(ctx, "Update matched zero rows, customer likely not found")
			return customer.ErrNotFound
		}
		translatedErr := translateDBError(err, logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			logger.WarnContext(ctx, "Failed to update customer due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		logger.ErrorContext(ctx, "Failed to update customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to update customer: %w", apperrors.ErrDatabase, err)
	}

	logger.InfoContext(ctx, "Customer updated successfully")
	return nil
}

func (r *CustomerRepository) FindByID(ctx context.Context, customerID int64) (*customer.Customer, error) {
	return r.findOne(ctx, "find_customer_by_id", findCustomerByIDQuery, customerID)
}

func (r *CustomerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return r.findOne(ctx, "find_customer_by_email", findCustomerByEmailQuery, email)
}

func (r *CustomerRepository) FindByNationalID(ctx context.Context, nationalID string) (*customer.Customer, error) {
	return r.findOne(ctx, "find_customer_by_national_id", findCustomerByNationalIDQuery, nationalID)
}

func (r *CustomerRepository) findOne(ctx context.Context, queryName, query string, arg any) (cust *customer.Customer, err error) {
	start := time.Now()
	defer func() { observeQuery(queryName, start, err) }()

	logger := r.logger.With(slog.String("query", queryName))
	logger.DebugContext(ctx, "Attempting to find customer")

	cust, err = scanCustomer(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			logger.DebugContext(ctx, "Customer not found")
			return nil, customer.ErrNotFound
		}
		logger.ErrorContext(ctx, "Failed to query/scan customer", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get customer: %w", apperrors.ErrDatabase, err)
	}

	logger.DebugContext(ctx, "Customer found successfully", slog.Int64("customerID", cust.ID))
	return cust, nil
}

func (r *CustomerRepository) ExistsByID(ctx context.Context, customerID int64) (exists bool, err error) {
	start := time.Now()
	defer func() { observeQuery("customer_exists", start, err) }()

	if err = r.db.QueryRow(ctx, customerExistsQuery, customerID).Scan(&exists); err != nil {
		r.logger.ErrorContext(ctx, "Failed to check customer existence", slog.Int64("customerID", customerID), slog.Any("error", err))
		return false, fmt.Errorf("%w: failed to check customer existence: %w", apperrors.ErrDatabase, err)
	}
	return exists, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context) (customers []*customer.Customer, err error) {
	start := time.Now()
	defer func() { observeQuery("find_all_customers", start, err) }()

	r.logger.InfoContext(ctx, "Attempting to find all customers")

	rows, err := r.db.Query(ctx, findAllCustomersQuery)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query customers", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query customers: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	customers = make([]*customer.Customer, 0)
	for rows.Next() {
		cust, scanErr := scanCustomer(rows)
		if scanErr != nil {
			r.logger.ErrorContext(ctx, "Failed to scan customer row", slog.Any("error", scanErr))
			err = fmt.Errorf("%w: failed to scan customer row: %w", apperrors.ErrDatabase, scanErr)
			return nil, err
		}
		customers = append(customers, cust)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating customer rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating customer rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding customers", slog.Int("count", len(customers)))
	return customers, nil
}

func (r *CustomerRepository) Delete(ctx context.Context, customerID int64) (err error) {
	start := time.Now()
	defer func() { observeQuery("delete_customer", start, err) }()

	logger := r.logger.With(slog.Int64("customerID", customerID))
	logger.InfoContext(ctx, "Attempting to delete customer")

	cmdTag, err := r.db.Exec(ctx, deleteCustomerQuery, customerID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to execute delete customer", slog.Any("error", err))
		return fmt.Errorf("%w: failed to delete customer: %w", apperrors.ErrDatabase, err)
	}

	if cmdTag.RowsAffected() == 0 {
		logger.WarnContext(ctx, "Delete affected zero rows, customer likely not found")
		return customer.ErrNotFound
	}

	logger.InfoContext(ctx, "Customer deleted successfully")
	return nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var cust customer.Customer
	err := row.Scan(
		&cust.ID,
		&cust.Name,
		&cust.LastName,
		&cust.NationalID,
		&cust.Email,
		&cust.CreatedAt,
		&cust.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cust, nil
}
