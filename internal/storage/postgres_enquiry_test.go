package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"gitlab.com/ingwane/api/enquiry-service/internal/apperrors"
	"gitlab.com/ingwane/api/enquiry-service/internal/model"
	"gitlab.com/ingwane/api/enquiry-service/pkg/logger"
)

// AnyTime matches any time.Time argument
type AnyTime struct{}

// Match satisfies sqlmock.Argument interface
func (a AnyTime) Match(v driver.Value) bool {
	_, ok := v.(time.Time)
	return ok
}

func newTestEnquiryRepo(t *testing.T) (*PostgresRepo, sqlmock.Sqlmock) {
	logger.Log = zaptest.NewLogger(t).Named("test")
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	assert.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 gormLogger.Default.LogMode(gormLogger.Silent),
		SkipDefaultTransaction: true,
	})
	assert.NoError(t, err)
	return &PostgresRepo{db: gormDB}, mock
}

func TestPostgresRepo_CreateEnquiry(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	enquiry := model.Enquiry{
		Name:        "Thandi Dlamini",
		Email:       "thandi@example.com",
		Phone:       "+27 82 555 0101",
		Subject:     "Safari package enquiry",
		Message:     "Looking for availability in October.",
		ServiceType: "tours",
		Status:      model.StatusNew,
		IPAddress:   "203.0.113.7",
		UserAgent:   "test-agent/1.0",
	}

	insertQuery := `INSERT INTO "enquiries" ("name","email","phone","subject","message","service_type","status","admin_notes","ip_address","user_agent","created_at","updated_at") VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING "id"`
	mock.ExpectQuery(insertQuery).
		WithArgs(
			enquiry.Name, enquiry.Email, enquiry.Phone, enquiry.Subject, enquiry.Message,
			enquiry.ServiceType, enquiry.Status, enquiry.AdminNotes, enquiry.IPAddress,
			enquiry.UserAgent, AnyTime{}, AnyTime{},
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	err := repo.CreateEnquiry(ctx, &enquiry)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), enquiry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListEnquiries_WithStatusFilter(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()
	now := time.Now()

	countQuery := `SELECT count(*) FROM "enquiries" WHERE status = $1`
	mock.ExpectQuery(countQuery).
		WithArgs(model.StatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(25)))

	listQuery := `SELECT * FROM "enquiries" WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows := sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "status", "created_at", "updated_at"}).
		AddRow(int64(2), "Sipho", "sipho@example.com", "Booking", "Hello", model.StatusNew, now, now).
		AddRow(int64(1), "Lerato", "lerato@example.com", "Prices", "Hi there", model.StatusNew, now.Add(-time.Hour), now.Add(-time.Hour))
	mock.ExpectQuery(listQuery).
		WithArgs(model.StatusNew, 10, 10).
		WillReturnRows(rows)

	enquiries, total, err := repo.ListEnquiries(ctx, model.ListFilter{Status: model.StatusNew, Page: 2, Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Len(t, enquiries, 2)
	assert.Equal(t, int64(2), enquiries[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListEnquiries_Empty(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	countQuery := `SELECT count(*) FROM "enquiries"`
	mock.ExpectQuery(countQuery).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	listQuery := `SELECT * FROM "enquiries" ORDER BY created_at DESC LIMIT $1`
	mock.ExpectQuery(listQuery).
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	enquiries, total, err := repo.ListEnquiries(ctx, model.ListFilter{Page: 1, Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.NotNil(t, enquiries)
	assert.Len(t, enquiries, 0)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_ListEnquiries_CountError(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	countQuery := `SELECT count(*) FROM "enquiries"`
	mock.ExpectQuery(countQuery).WillReturnError(errors.New("connection reset by peer"))

	enquiries, total, err := repo.ListEnquiries(ctx, model.ListFilter{Page: 1, Limit: 20})
	assert.Error(t, err)
	assert.True(t, apperrors.IsDatabaseError(err))
	assert.Nil(t, enquiries)
	assert.Equal(t, int64(0), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_FindEnquiryByID_Found(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()
	now := time.Now()

	selectQuery := `SELECT * FROM "enquiries" WHERE id = $1 ORDER BY "enquiries"."id" LIMIT $2`
	rows := sqlmock.NewRows([]string{"id", "name", "email", "subject", "message", "status", "created_at", "updated_at"}).
		AddRow(int64(7), "Thandi", "thandi@example.com", "Safari", "Availability?", model.StatusNew, now, now)
	mock.ExpectQuery(selectQuery).WithArgs(int64(7), 1).WillReturnRows(rows)

	enquiry, err := repo.FindEnquiryByID(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), enquiry.ID)
	assert.Equal(t, "thandi@example.com", enquiry.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_FindEnquiryByID_NotFound(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	selectQuery := `SELECT * FROM "enquiries" WHERE id = $1 ORDER BY "enquiries"."id" LIMIT $2`
	mock.ExpectQuery(selectQuery).WithArgs(int64(99), 1).WillReturnError(gorm.ErrRecordNotFound)

	enquiry, err := repo.FindEnquiryByID(ctx, 99)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, enquiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateEnquiryStatus_WithNotes(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()
	now := time.Now()
	notes := "Called the client back"

	updateQuery := `UPDATE "enquiries" SET "admin_notes"=$1,"status"=$2,"updated_at"=$3 WHERE id = $4`
	mock.ExpectExec(updateQuery).
		WithArgs(notes, model.StatusResponded, AnyTime{}, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	selectQuery := `SELECT * FROM "enquiries" WHERE id = $1 ORDER BY "enquiries"."id" LIMIT $2`
	rows := sqlmock.NewRows([]string{"id", "name", "email", "status", "admin_notes", "created_at", "updated_at"}).
		AddRow(int64(7), "Thandi", "thandi@example.com", model.StatusResponded, notes, now, now)
	mock.ExpectQuery(selectQuery).WithArgs(int64(7), 1).WillReturnRows(rows)

	enquiry, err := repo.UpdateEnquiryStatus(ctx, 7, model.StatusResponded, &notes)
	assert.NoError(t, err)
	assert.Equal(t, model.StatusResponded, enquiry.Status)
	assert.Equal(t, notes, enquiry.AdminNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateEnquiryStatus_NilNotesPreserved(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()
	now := time.Now()

	updateQuery := `UPDATE "enquiries" SET "status"=$1,"updated_at"=$2 WHERE id = $3`
	mock.ExpectExec(updateQuery).
		WithArgs(model.StatusClosed, AnyTime{}, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	selectQuery := `SELECT * FROM "enquiries" WHERE id = $1 ORDER BY "enquiries"."id" LIMIT $2`
	rows := sqlmock.NewRows([]string{"id", "name", "email", "status", "admin_notes", "created_at", "updated_at"}).
		AddRow(int64(7), "Thandi", "thandi@example.com", model.StatusClosed, "earlier notes", now, now)
	mock.ExpectQuery(selectQuery).WithArgs(int64(7), 1).WillReturnRows(rows)

	enquiry, err := repo.UpdateEnquiryStatus(ctx, 7, model.StatusClosed, nil)
	assert.NoError(t, err)
	assert.Equal(t, "earlier notes", enquiry.AdminNotes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_UpdateEnquiryStatus_NotFound(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	updateQuery := `UPDATE "enquiries" SET "status"=$1,"updated_at"=$2 WHERE id = $3`
	mock.ExpectExec(updateQuery).
		WithArgs(model.StatusClosed, AnyTime{}, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	enquiry, err := repo.UpdateEnquiryStatus(ctx, 404, model.StatusClosed, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, enquiry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Both stats queries must carry the 30-day window; the exact-match
// expectations fail if either aggregate drops the filter.
const (
	statsStatusQuery = `SELECT status, COUNT(*) AS count FROM "enquiries" WHERE created_at >= CURRENT_DATE - INTERVAL '30 days' GROUP BY "status"`
	statsTrendQuery  = `SELECT DATE(created_at) AS date, COUNT(*) AS count FROM "enquiries" WHERE created_at >= CURRENT_DATE - INTERVAL '30 days' GROUP BY DATE(created_at) ORDER BY date DESC`
)

func TestPostgresRepo_EnquiryStats(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	statusRows := sqlmock.NewRows([]string{"status", "count"}).
		AddRow(model.StatusNew, int64(5)).
		AddRow(model.StatusInProgress, int64(3)).
		AddRow(model.StatusClosed, int64(2))
	mock.ExpectQuery(statsStatusQuery).WillReturnRows(statusRows)

	trendRows := sqlmock.NewRows([]string{"date", "count"}).
		AddRow(time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC), int64(4)).
		AddRow(time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC), int64(6))
	mock.ExpectQuery(statsTrendQuery).WillReturnRows(trendRows)

	stats, err := repo.EnquiryStats(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(10), stats.Total)
	assert.Equal(t, int64(5), stats.ByStatus.New)
	assert.Equal(t, int64(3), stats.ByStatus.InProgress)
	assert.Equal(t, int64(0), stats.ByStatus.Responded)
	assert.Equal(t, int64(2), stats.ByStatus.Closed)
	assert.Len(t, stats.DailyTrends, 2)
	assert.Equal(t, "2026-08-27", stats.DailyTrends[0].Date)
	assert.Equal(t, int64(4), stats.DailyTrends[0].Count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepo_EnquiryStats_OldRowsExcluded(t *testing.T) {
	repo, mock := newTestEnquiryRepo(t)
	ctx := context.Background()

	// Rows older than the window never reach the aggregates; the database
	// returns empty result sets for both windowed queries.
	mock.ExpectQuery(statsStatusQuery).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}))
	mock.ExpectQuery(statsTrendQuery).
		WillReturnRows(sqlmock.NewRows([]string{"date", "count"}))

	stats, err := repo.EnquiryStats(ctx)
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, int64(0), stats.Total)
	assert.Equal(t, model.StatusCounts{}, stats.ByStatus)
	assert.Empty(t, stats.DailyTrends)
	assert.NoError(t, mock.ExpectationsWereMet())
}
