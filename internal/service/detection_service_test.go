package service

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saferoute/saferoute-backend-go/internal/models"
	"github.com/saferoute/saferoute-backend-go/internal/repository"
)

func newDetectionService(t *testing.T) (*DetectionService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewDetectionService(repository.NewDetectionRepository(db), zap.NewNop()), mock
}

func detectionRow(id string, confirmations int, verified bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "location", "image_url", "detections", "confidence", "user_confirmations", "verified", "created_at",
	}).AddRow(id, `{"lat":37.5,"lon":127.0}`, "https://img.example/1.jpg", `[]`,
		0.9, confirmations, verified, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
}

func TestDetectionService_Ingest(t *testing.T) {
	svc, mock := newDetectionService(t)

	mock.ExpectExec("INSERT INTO cctv_detections").
		WillReturnResult(sqlmock.NewResult(1, 1))

	detection, err := svc.Ingest(models.DetectionCreate{
		ImageURL:   "https://img.example/1.jpg",
		Location:   models.Location{Lat: 37.5, Lon: 127.0},
		Confidence: 0.9,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, detection.ID)
	assert.NotNil(t, detection.Detections, "boxes default to an empty list")
	assert.Zero(t, detection.Confirmations)
	assert.False(t, detection.Verified)
	assert.False(t, detection.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionService_ConfirmBelowThreshold(t *testing.T) {
	svc, mock := newDetectionService(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM cctv_detections").
		WithArgs("det-1").
		WillReturnRows(detectionRow("det-1", 3, false))
	mock.ExpectExec("UPDATE cctv_detections").
		WithArgs(4, false, "det-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	detection, err := svc.Confirm("det-1")
	require.NoError(t, err)

	assert.Equal(t, 4, detection.Confirmations)
	assert.False(t, detection.Verified)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionService_ConfirmReachesThreshold(t *testing.T) {
	svc, mock := newDetectionService(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM cctv_detections").
		WithArgs("det-1").
		WillReturnRows(detectionRow("det-1", models.VerifyConfirmations-1, false))
	mock.ExpectExec("UPDATE cctv_detections").
		WithArgs(models.VerifyConfirmations, true, "det-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	detection, err := svc.Confirm("det-1")
	require.NoError(t, err)

	assert.Equal(t, models.VerifyConfirmations, detection.Confirmations)
	assert.True(t, detection.Verified, "the tenth confirmation verifies the detection")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionService_ConfirmUnknownDetection(t *testing.T) {
	svc, mock := newDetectionService(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM cctv_detections").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "location", "image_url", "detections", "confidence", "user_confirmations", "verified", "created_at",
		}))

	_, err := svc.Confirm("missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
