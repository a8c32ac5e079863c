package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestUserRepo_IsAuthorized(t *testing.T) {
	const query = `SELECT authorized FROM learners WHERE user_id = \$1`

	tests := []struct {
		name     string
		rows     *sqlmock.Rows
		queryErr error
		want     bool
		wantErr  string
	}{
		{
			name: "authorized learner",
			rows: sqlmock.NewRows([]string{"authorized"}).AddRow(true),
			want: true,
		},
		{
			name: "learner awaiting password",
			rows: sqlmock.NewRows([]string{"authorized"}).AddRow(false),
		},
		{
			name:     "unknown learner",
			queryErr: sql.ErrNoRows,
		},
		{
			name:     "query fails",
			queryErr: errors.New("connection reset"),
			wantErr:  "check learner authorization",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockUserRepo(t)

			expect := mock.ExpectQuery(query).WithArgs(int64(42))
			if tt.queryErr != nil {
				expect.WillReturnError(tt.queryErr)
			} else {
				expect.WillReturnRows(tt.rows)
			}

			got, err := repo.IsAuthorized(context.Background(), 42)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Writes(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		call    func(*UserRepo) error
		execErr error
		wantErr string
	}{
		{
			name:    "authorize upserts",
			pattern: `INSERT INTO learners .* DO UPDATE SET authorized = TRUE`,
			call:    func(r *UserRepo) error { return r.AuthorizeUser(context.Background(), 7) },
		},
		{
			name:    "authorize fails",
			pattern: `INSERT INTO learners`,
			call:    func(r *UserRepo) error { return r.AuthorizeUser(context.Background(), 7) },
			execErr: errors.New("db down"),
			wantErr: "authorize learner",
		},
		{
			name:    "ensure leaves existing rows alone",
			pattern: `INSERT INTO learners .* ON CONFLICT \(user_id\) DO NOTHING`,
			call:    func(r *UserRepo) error { return r.EnsureUserExists(context.Background(), 7) },
		},
		{
			name:    "ensure fails",
			pattern: `INSERT INTO learners`,
			call:    func(r *UserRepo) error { return r.EnsureUserExists(context.Background(), 7) },
			execErr: errors.New("db down"),
			wantErr: "ensure learner",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockUserRepo(t)

			expect := mock.ExpectExec(tt.pattern).WithArgs(int64(7))
			if tt.execErr != nil {
				expect.WillReturnError(tt.execErr)
			} else {
				expect.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := tt.call(repo)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
