package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byiitians/portal-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func sectionRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "description", "icon", "kind", "display_order", "is_active", "created_at", "updated_at"}).
		AddRow("s1", "Study Material", "", "book", string(models.SectionKindStudyMaterial), 1, true, now, now)
}

func TestSectionListActive(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, icon, kind, display_order, is_active, created_at, updated_at FROM sections WHERE is_active = TRUE ORDER BY display_order")).
		WillReturnRows(sectionRows(time.Now()))

	sections, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, models.SectionKindStudyMaterial, sections[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectQuery("SELECT .+ FROM sections WHERE id").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectExec("INSERT INTO sections").WillReturnResult(sqlmock.NewResult(1, 1))

	section := &models.Section{Title: "Results", Kind: models.SectionKindFlat, DisplayOrder: 2, IsActive: true}
	err := repo.Create(context.Background(), section)
	require.NoError(t, err)
	assert.NotEmpty(t, section.ID)
	assert.False(t, section.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSectionUpdate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSectionRepository(db)

	mock.ExpectExec("UPDATE sections SET").WillReturnResult(sqlmock.NewResult(0, 1))

	section := &models.Section{ID: "s1", Title: "Results", Kind: models.SectionKindFlat}
	err := repo.Update(context.Background(), section)
	require.NoError(t, err)
	assert.False(t, section.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
