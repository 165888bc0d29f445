package postgres

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalpos-backend/internal/domain"
	"rentalpos-backend/internal/repository"
)

func testTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionNumber: "TXN20260820143000-abc123",
		Type:              domain.TransactionTypeSale,
		EmployeeID:        7,
		Subtotal:          decimal.RequireFromString("49.95"),
		TaxAmount:         decimal.RequireFromString("3.996"),
		Total:             decimal.RequireFromString("53.946"),
		PaymentMethod:     domain.PaymentMethodCash,
		AmountTendered:    decimal.NewFromInt(60),
		ChangeGiven:       decimal.RequireFromString("6.05"),
		CreatedOn:         testTimestamp,
		Items: []domain.TransactionItem{
			{ItemID: 1, Quantity: 5, UnitPrice: decimal.RequireFromString("9.99")},
		},
	}
}

func newMockTxnRepo(t *testing.T) (*transactionRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &transactionRepository{db: db}, mock
}

func txnRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "transaction_number", "transaction_type", "employee_id",
		"customer_id", "coupon_id", "subtotal", "discount_amount", "tax_amount", "total",
		"payment_method", "amount_tendered", "change_given", "created_on"})
}

func TestTransactionRepository_Create(t *testing.T) {
	repo, mock := newMockTxnRepo(t)
	txn := testTransaction()

	mock.ExpectQuery(`INSERT INTO transactions`).
		WithArgs(txn.TransactionNumber, txn.Type, txn.EmployeeID, nil, nil,
			txn.Subtotal, txn.DiscountAmount, txn.TaxAmount, txn.Total,
			txn.PaymentMethod, txn.AmountTendered, txn.ChangeGiven, txn.CreatedOn).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(42)))
	mock.ExpectQuery(`INSERT INTO transaction_items`).
		WithArgs(int32(42), int32(1), int32(5), decimal.RequireFromString("9.99")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(100)))

	err := repo.Create(context.Background(), txn)
	require.NoError(t, err)
	assert.Equal(t, int32(42), txn.ID)
	assert.Equal(t, int32(42), txn.Items[0].TransactionID)
	assert.Equal(t, int32(100), txn.Items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_GetByNumber(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo, mock := newMockTxnRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE transaction_number = \$1`).
			WithArgs("TXN20260820143000-abc123").
			WillReturnRows(txnRows().AddRow(int32(42), "TXN20260820143000-abc123", "SALE", int32(7),
				nil, nil, "49.95", "0", "3.996", "53.946", "CASH", "60", "6.05", testTimestamp))
		mock.ExpectQuery(`SELECT ti.id, ti.transaction_id, ti.item_id`).
			WithArgs(int32(42)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "transaction_id", "item_id", "name", "quantity", "unit_price"}).
				AddRow(int32(100), int32(42), int32(1), "Widget", int32(5), "9.99"))

		txn, err := repo.GetByNumber(context.Background(), "TXN20260820143000-abc123")
		require.NoError(t, err)
		assert.True(t, txn.Total.Equal(decimal.RequireFromString("53.946")))
		require.Len(t, txn.Items, 1)
		assert.Equal(t, "Widget", txn.Items[0].ItemName)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo, mock := newMockTxnRepo(t)

		mock.ExpectQuery(`SELECT .+ FROM transactions WHERE transaction_number = \$1`).
			WithArgs("TXN-MISSING").
			WillReturnRows(txnRows())

		_, err := repo.GetByNumber(context.Background(), "TXN-MISSING")
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

func TestTransactionRepository_List(t *testing.T) {
	repo, mock := newMockTxnRepo(t)

	mock.ExpectQuery(`SELECT .+ FROM transactions WHERE 1=1 AND transaction_type = \$1 AND employee_id = \$2 ORDER BY created_on DESC LIMIT \$3`).
		WithArgs(domain.TransactionTypeSale, int32(7), int32(10)).
		WillReturnRows(txnRows().AddRow(int32(42), "TXN-1", "SALE", int32(7),
			nil, nil, "49.95", "0", "3.996", "53.946", "CASH", "60", "6.05", testTimestamp))

	txns, err := repo.List(context.Background(), repository.TransactionFilter{
		Type:       domain.TransactionTypeSale,
		EmployeeID: 7,
		Limit:      10,
	})
	require.NoError(t, err)
	assert.Len(t, txns, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionRepository_EmployeeTotals(t *testing.T) {
	repo, mock := newMockTxnRepo(t)

	mock.ExpectQuery(`SELECT e.id, e.first_name`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "count", "total"}).
			AddRow(int32(1), "Pat Jones", int32(12), "500.00").
			AddRow(int32(2), "Sam Lee", int32(0), "0"))

	stats, err := repo.EmployeeTotals(context.Background())
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "Pat Jones", stats[0].EmployeeName)
	assert.True(t, stats[0].TotalAmount.Equal(decimal.NewFromInt(500)))
}
