package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/advocates/pkg/advocates"
)

var advocateColumns = []string{
	"id", "first_name", "last_name", "city", "degree", "payload",
	"years_of_experience", "phone_number", "created_at",
}

func setupMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewStore(NewConnectionManagerFromDB(db)), mock
}

func TestStore_List(t *testing.T) {
	store, mock := setupMockStore(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(advocateColumns).
		AddRow(1, "John", "Doe", "New York", "MD", []byte(`["Cardiology","Pediatrics"]`), 10, int64(5551234567), created).
		AddRow(2, "Jane", "Smith", "Los Angeles", "PhD", []byte(`[]`), 8, int64(5559876543), nil)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(50).
		WillReturnRows(rows)

	results, err := store.List(context.Background(), 50)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, int64(1), results[0].ID)
	assert.Equal(t, "John", results[0].FirstName)
	assert.Equal(t, advocates.Specialties{"Cardiology", "Pediatrics"}, results[0].Specialties)
	require.NotNil(t, results[0].CreatedAt)
	assert.True(t, created.Equal(*results[0].CreatedAt))

	assert.Equal(t, advocates.Specialties{}, results[1].Specialties)
	assert.Nil(t, results[1].CreatedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_Empty(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows(advocateColumns))

	results, err := store.List(context.Background(), 50)
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestStore_FindByPhone(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows(advocateColumns).
		AddRow(3, "Ann", "Lee", "New York", "MSW", []byte(`["Trauma"]`), 4, int64(2125551234), nil)

	mock.ExpectQuery(regexp.QuoteMeta(phoneQuery)).
		WithArgs(int64(2125551234)).
		WillReturnRows(rows)

	results, err := store.FindByPhone(context.Background(), 2125551234)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, int64(2125551234), results[0].PhoneNumber)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FullText(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows(advocateColumns).
		AddRow(1, "John", "Doe", "New York", "MD", []byte(`["Cardiology"]`), 10, int64(5551234567), nil)

	mock.ExpectQuery(`search_tsv @@ websearch_to_tsquery\('english', \$1\) ORDER BY ts_rank\(search_tsv, websearch_to_tsquery\('english', \$1\)\) DESC, id ASC LIMIT \$2`).
		WithArgs("cardiology", 50).
		WillReturnRows(rows)

	results, err := store.FullText(context.Background(), "cardiology", 50)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Doe", results[0].LastName)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_QueryError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(50).
		WillReturnError(errors.New("connection reset"))

	results, err := store.List(context.Background(), 50)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query advocates")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestStore_ScanError(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows(advocateColumns).
		AddRow(1, "John", "Doe", "New York", "MD", []byte(`{not json`), 10, int64(5551234567), nil)

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(50).
		WillReturnRows(rows)

	_, err := store.List(context.Background(), 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan advocate")
}

func TestStore_RowIterationError(t *testing.T) {
	store, mock := setupMockStore(t)

	rows := sqlmock.NewRows(advocateColumns).
		AddRow(1, "John", "Doe", "New York", "MD", []byte(`[]`), 10, int64(5551234567), nil).
		RowError(0, errors.New("stream broken"))

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(50).
		WillReturnRows(rows)

	_, err := store.List(context.Background(), 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error iterating advocates")
}

func TestStore_Insert(t *testing.T) {
	store, mock := setupMockStore(t)

	records := []advocates.Advocate{
		{FirstName: "John", LastName: "Doe", City: "New York", Degree: "MD", Specialties: advocates.Specialties{"Cardiology"}, YearsOfExperience: 10, PhoneNumber: 5551234567},
		{FirstName: "Jane", LastName: "Smith", City: "Austin", Degree: "PhD", YearsOfExperience: 3, PhoneNumber: 5559876543},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO advocates`).
		WithArgs("John", "Doe", "New York", "MD", `["Cardiology"]`, 10, int64(5551234567)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectQuery(`INSERT INTO advocates`).
		WithArgs("Jane", "Smith", "Austin", "PhD", `[]`, 3, int64(5559876543)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(12))
	mock.ExpectCommit()

	ids, err := store.Insert(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 12}, ids)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Insert_RollsBackOnError(t *testing.T) {
	store, mock := setupMockStore(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO advocates`).
		WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	_, err := store.Insert(context.Background(), []advocates.Advocate{{FirstName: "John", LastName: "Doe"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert advocate John Doe")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLimitArg(t *testing.T) {
	assert.Equal(t, 50, limitArg(50))
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-1))
}
