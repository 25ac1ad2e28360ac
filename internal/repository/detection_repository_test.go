package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saferoute/saferoute-backend-go/internal/models"
)

func TestDetectionRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDetectionRepository(db)

	mock.ExpectExec("INSERT INTO cctv_detections").
		WithArgs("det-1", sqlmock.AnyArg(), "https://img.example/1.jpg", sqlmock.AnyArg(),
			0.91, 0, false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = repo.Create(&models.CCTVDetection{
		ID:         "det-1",
		Location:   models.Location{Lat: 37.5, Lon: 127.0},
		ImageURL:   "https://img.example/1.jpg",
		Detections: []models.DetectionBox{{Class: "cctv", Confidence: 0.91, BBox: []int{1, 2, 3, 4}}},
		Confidence: 0.91,
		CreatedAt:  time.Now().UTC(),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDetectionRepository(db)

	created := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "location", "image_url", "detections", "confidence", "user_confirmations", "verified", "created_at",
	}).AddRow(
		"det-1",
		`{"lat":37.5,"lon":127.0}`,
		"https://img.example/1.jpg",
		`[{"class":"cctv","confidence":0.91,"bbox":[1,2,3,4]}]`,
		0.91, 3, false, created,
	)

	mock.ExpectQuery("(?s)SELECT .+ FROM cctv_detections").
		WithArgs("det-1").
		WillReturnRows(rows)

	detection, err := repo.GetByID("det-1")
	require.NoError(t, err)

	assert.Equal(t, "det-1", detection.ID)
	assert.Equal(t, 37.5, detection.Location.Lat)
	assert.Equal(t, 3, detection.Confirmations)
	require.Len(t, detection.Detections, 1)
	assert.Equal(t, "cctv", detection.Detections[0].Class)
	assert.Equal(t, []int{1, 2, 3, 4}, detection.Detections[0].BBox)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDetectionRepository(db)

	mock.ExpectQuery("(?s)SELECT .+ FROM cctv_detections").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "location", "image_url", "detections", "confidence", "user_confirmations", "verified", "created_at",
		}))

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetectionRepository_UpdateConfirmations(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDetectionRepository(db)

	mock.ExpectExec("UPDATE cctv_detections").
		WithArgs(10, true, "det-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateConfirmations("det-1", 10, true))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDetectionRepository_UpdateConfirmations_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewDetectionRepository(db)

	mock.ExpectExec("UPDATE cctv_detections").
		WithArgs(1, false, "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.UpdateConfirmations("missing", 1, false)
	assert.ErrorIs(t, err, ErrNotFound)
}
