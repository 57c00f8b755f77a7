package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rpupo63/research-lab-backend/errs"
	"github.com/rpupo63/research-lab-backend/models"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// recordedSQL keeps every statement gorm sends, in order.
type recordedSQL struct {
	statements []string
}

func (r *recordedSQL) last() string {
	if len(r.statements) == 0 {
		return ""
	}
	return r.statements[len(r.statements)-1]
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *recordedSQL) {
	t.Helper()

	recorded := &recordedSQL{}
	matcher := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		recorded.statements = append(recorded.statements, actualSQL)
		return sqlmock.QueryMatcherRegexp.Match(expectedSQL, actualSQL)
	})

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock, recorded
}

func newPublicationRepo(db *gorm.DB) *PublicationRepo {
	repo := NewPublicationRepo(db)
	repo.now = func() time.Time { return fixedNow }
	return repo
}

func TestFindAllOrdersNewestFirst(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := newPublicationRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "publications" ORDER BY created_at DESC,\s*id DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "created_at"}).
			AddRow(2, "Newer", fixedNow).
			AddRow(1, "Older", fixedNow.Add(-time.Hour)))

	rows, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(2), rows[0].ID)
	assert.Equal(t, "Older", rows[1].Title)
	assert.True(t, rows[0].CreatedAt.Time().Equal(fixedNow))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDNotFound(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := newPublicationRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "publications" WHERE "publications"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), 7)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStampsAndTakesAssignedID(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := newPublicationRepo(db)

	mock.ExpectQuery(`INSERT INTO "publications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	row := &models.Publication{Title: "  Light-sheet imaging  "}
	row.ID = 40
	require.NoError(t, repo.Add(context.Background(), row))

	assert.Equal(t, uint(9), row.ID)
	assert.Equal(t, "Light-sheet imaging", row.Title)
	assert.True(t, row.CreatedAt.Time().Equal(fixedNow))
	assert.True(t, row.UpdatedAt.Time().Equal(fixedNow))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate(t *testing.T) {
	t.Run("writes every column but id and created_at", func(t *testing.T) {
		db, mock, recorded := newMockDB(t)
		repo := newPublicationRepo(db)

		mock.ExpectExec(`UPDATE "publications" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		row := &models.Publication{Title: "Revised", Journal: "Cell"}
		row.ID = 3
		require.NoError(t, repo.Update(context.Background(), row))
		require.NoError(t, mock.ExpectationsWereMet())

		statement := recorded.last()
		assert.Contains(t, statement, `"updated_at"`)
		assert.Contains(t, statement, `"journal"`)
		assert.NotContains(t, statement, `"created_at"`)
		assert.Regexp(t, regexp.MustCompile(`WHERE "publications"\."id" = \$\d+`), statement)
		assert.True(t, row.UpdatedAt.Time().Equal(fixedNow))
	})

	t.Run("no matching row", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		repo := newPublicationRepo(db)

		mock.ExpectExec(`UPDATE "publications" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		row := &models.Publication{Title: "Gone"}
		row.ID = 404
		err := repo.Update(context.Background(), row)
		assert.True(t, errs.IsNotFound(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing id never reaches the database", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		repo := newPublicationRepo(db)

		err := repo.Update(context.Background(), &models.Publication{Title: "No id"})
		assert.True(t, errs.IsMissingRequiredFieldError(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDelete(t *testing.T) {
	db, mock, _ := newMockDB(t)
	repo := newPublicationRepo(db)

	mock.ExpectExec(`DELETE FROM "publications" WHERE "publications"\."id" = \$1`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "publications"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), 5))

	err := repo.Delete(context.Background(), 5)
	assert.True(t, errs.IsNotFound(err))
	assert.Equal(t, "publication not found", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDs(t *testing.T) {
	t.Run("keeps existing rows newest first", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		repo := NewResearchRepo(db)

		mock.ExpectQuery(`SELECT \* FROM "research" WHERE id IN \(\$1,\$2,\$3\) ORDER BY created_at DESC,\s*id DESC`).
			WithArgs(1, 2, 99).
			WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
				AddRow(2, "Second").
				AddRow(1, "First"))

		research, err := repo.FindByIDs(context.Background(), []uint{1, 2, 99})
		require.NoError(t, err)
		require.Len(t, research, 2)
		assert.Equal(t, "Second", research[0].Title)
		assert.NotNil(t, research[0].Authors)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no ids means no query", func(t *testing.T) {
		db, mock, _ := newMockDB(t)
		repo := NewResearchRepo(db)

		research, err := repo.FindByIDs(context.Background(), nil)
		require.NoError(t, err)
		assert.NotNil(t, research)
		assert.Empty(t, research)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
