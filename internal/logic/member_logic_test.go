package logic

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/js051/Course-Management/internal/config"
	"github.com/js051/Course-Management/internal/database"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	return db
}

func TestCreateMemberAndGetByEmail(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	created, err := m.CreateMember("Test User", "test@example.com", "臺北地方法院", "0912345678")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := m.GetMemberByEmail("test@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "Test User", found.Name)

	missing, err := m.GetMemberByEmail("nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreateMemberDuplicateEmail(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	_, err := m.CreateMember("甲", "same@example.com", "", "")
	require.NoError(t, err)

	_, err = m.CreateMember("乙", "same@example.com", "", "")
	assert.ErrorIs(t, err, ErrEmailTaken)

	count, err := m.CountMembers()
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateMemberWithoutEmail(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	// 唯一索引只約束非空信箱，多筆無信箱學員要能共存
	_, err := m.CreateMember("甲", "", "", "")
	require.NoError(t, err)
	_, err = m.CreateMember("乙", "", "", "")
	require.NoError(t, err)

	count, err := m.CountMembers()
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestGetMember(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	created, err := m.CreateMember("Test User", "", "", "")
	require.NoError(t, err)

	found, err := m.GetMember(created.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Test User", found.Name)

	missing, err := m.GetMember("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListMembersPaging(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	names := []string{"一", "二", "三", "四", "五"}
	for i, name := range names {
		_, err := m.CreateMember(name, "", "", "")
		require.NoError(t, err, "insert %d", i)
	}

	first, err := m.ListMembers(0, 3)
	require.NoError(t, err)
	require.Len(t, first, 3)
	for i, member := range first {
		assert.Equal(t, names[i], member.Name)
	}

	rest, err := m.ListMembers(3, 100)
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "四", rest[0].Name)
	assert.Equal(t, "五", rest[1].Name)

	_, err = m.ListMembers(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidRange)
	_, err = m.ListMembers(0, -1)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSearchMembers(t *testing.T) {
	m := NewMemberLogic(newTestDB(t))

	_, err := m.CreateMember("王小明", "ming@example.com", "臺北地方法院", "")
	require.NoError(t, err)
	_, err = m.CreateMember("李小華", "hua@example.com", "臺中地方法院", "")
	require.NoError(t, err)

	byName, err := m.SearchMembers("小明")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "王小明", byName[0].Name)

	byUnit, err := m.SearchMembers("臺中")
	require.NoError(t, err)
	require.Len(t, byUnit, 1)
	assert.Equal(t, "李小華", byUnit[0].Name)

	all, err := m.SearchMembers("地方法院")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
