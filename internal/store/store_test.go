package store

import (
	"path/filepath"
	"testing"
	"time"

	"nexus-api/internal/domain"
	"nexus-api/pkg/db"

	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *Store {
	t.Helper()
	gdb, err := db.OpenGorm(db.Config{
		Dialect: db.DialectSQLite,
		DSN:     filepath.Join(t.TempDir(), "store.db"),
	})
	require.NoError(t, err)
	st := New(gdb)
	require.NoError(t, st.AutoMigrate(t.Context()))
	return st
}

func createPerson(t *testing.T, st *Store, email, name string) *domain.Person {
	t.Helper()
	p := &domain.Person{Email: email, Name: name, PasswordHash: "x", Active: true}
	require.NoError(t, st.Persons().Create(t.Context(), p))
	return p
}

func TestPersonStore(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := t.Context()

	ana := createPerson(t, st, "ana@example.com", "Ana")
	bia := createPerson(t, st, "bia@example.com", "Bia")
	require.NotZero(t, ana.ID)
	require.Less(t, ana.ID, bia.ID)

	err := st.Persons().Create(ctx, &domain.Person{Email: "ana@example.com", Name: "Dup", PasswordHash: "x", Active: true})
	require.ErrorIs(t, err, ErrDuplicateKey)

	list, err := st.Persons().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, ana.ID, list[0].ID)

	list, err = st.Persons().List(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, bia.ID, list[0].ID)

	got, err := st.Persons().GetActiveByEmail(ctx, "bia@example.com")
	require.NoError(t, err)
	require.Equal(t, bia.ID, got.ID)

	require.NoError(t, st.DB.Model(&domain.Person{}).Where("id = ?", bia.ID).Update("active", false).Error)
	_, err = st.Persons().GetActiveByEmail(ctx, "bia@example.com")
	require.ErrorIs(t, err, ErrRecordNotFound)
	_, err = st.Persons().GetActiveByID(ctx, bia.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)
	_, err = st.Persons().GetByID(ctx, bia.ID)
	require.NoError(t, err)

	bia.Email = "ana@example.com"
	require.ErrorIs(t, st.Persons().Update(ctx, bia), ErrDuplicateKey)

	require.NoError(t, st.Persons().Delete(ctx, ana.ID))
	require.ErrorIs(t, st.Persons().Delete(ctx, ana.ID), ErrRecordNotFound)
}

func TestMessageStore(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := t.Context()
	ana := createPerson(t, st, "ana@example.com", "Ana")
	bia := createPerson(t, st, "bia@example.com", "Bia")

	now := time.Now().UTC()
	first := &domain.Message{Text: "primeira", Date: now, FromID: ana.ID, ToID: bia.ID}
	second := &domain.Message{Text: "segunda", Date: now, FromID: bia.ID, ToID: ana.ID}
	require.NoError(t, st.Messages().Create(ctx, first))
	require.NoError(t, st.Messages().Create(ctx, second))

	list, err := st.Messages().List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.ID, list[0].ID)
	require.Equal(t, "Bia", list[0].From.Name)
	require.Equal(t, "Ana", list[0].To.Name)
	require.Empty(t, list[0].From.Email, "participants are narrowed to id and name")

	got, err := st.Messages().GetByID(ctx, first.ID)
	require.NoError(t, err)
	got.Read = true
	require.NoError(t, st.Messages().Update(ctx, got))

	got, err = st.Messages().GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.True(t, got.Read)

	// Participants are untouched by message updates.
	p, err := st.Persons().GetByID(ctx, ana.ID)
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", p.Email)

	require.NoError(t, st.Messages().Delete(ctx, first.ID))
	_, err = st.Messages().GetByID(ctx, first.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)
	require.ErrorIs(t, st.Messages().Delete(ctx, first.ID), ErrRecordNotFound)
}

// newSQLiteStore passes a bare file DSN, so the cascade only happens if
// OpenGorm turns foreign keys on by itself.
func TestDeletingPersonCascadesMessages(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := t.Context()
	ana := createPerson(t, st, "ana@example.com", "Ana")
	bia := createPerson(t, st, "bia@example.com", "Bia")
	msg := &domain.Message{Text: "olá", Date: time.Now().UTC(), FromID: ana.ID, ToID: bia.ID}
	require.NoError(t, st.Messages().Create(ctx, msg))

	require.NoError(t, st.Persons().Delete(ctx, ana.ID))
	_, err := st.Messages().GetByID(ctx, msg.ID)
	require.ErrorIs(t, err, ErrRecordNotFound)

	list, err := st.Messages().List(ctx, 0, 0)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestWithTxRollsBack(t *testing.T) {
	st := newSQLiteStore(t)
	ctx := t.Context()

	err := st.WithTx(ctx, func(tx *Store) error {
		createPerson(t, tx, "ana@example.com", "Ana")
		return ErrDuplicateKey
	})
	require.ErrorIs(t, err, ErrDuplicateKey)

	_, err = st.Persons().GetActiveByEmail(ctx, "ana@example.com")
	require.ErrorIs(t, err, ErrRecordNotFound)
}
