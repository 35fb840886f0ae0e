package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/asahina-dev/teamspace-api/internal/models"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestWorkspaceRepository_CreateWithAdmin(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewWorkspaceRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspaces`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `members`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	workspace := &models.Workspace{Name: "Acme", InviteCode: "a1b2c3d4e5", UserID: 3}
	member := &models.Member{UserID: 3, Role: models.RoleAdmin}
	require.NoError(t, repo.CreateWithAdmin(workspace, member))

	// The membership picks up the freshly assigned workspace ID
	require.EqualValues(t, 7, workspace.ID)
	require.EqualValues(t, 7, member.WorkspaceID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_CreateWithAdmin_RollsBack(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewWorkspaceRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `workspaces`").
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `members`").
		WillReturnError(errors.New("duplicate entry"))
	mock.ExpectRollback()

	workspace := &models.Workspace{Name: "Acme", InviteCode: "a1b2c3d4e5", UserID: 3}
	member := &models.Member{UserID: 3, Role: models.RoleAdmin}
	require.Error(t, repo.CreateWithAdmin(workspace, member))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_FindMember(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewWorkspaceRepository(gormDB)

	rows := sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}).
		AddRow(5, 1, 2, "MEMBER")
	mock.ExpectQuery("SELECT \\* FROM `members`").
		WithArgs(uint64(1), uint64(2), 1).
		WillReturnRows(rows)

	member, err := repo.FindMember(1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 5, member.ID)
	require.Equal(t, models.RoleMember, member.Role)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkspaceRepository_FindMember_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewWorkspaceRepository(gormDB)

	mock.ExpectQuery("SELECT \\* FROM `members`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "workspace_id", "user_id", "role"}))

	_, err := repo.FindMember(1, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
