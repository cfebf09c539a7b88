package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"tabela/internal/app/server/config"
)

func TestOpen_SQLite(t *testing.T) {
	ctx := context.Background()
	db := config.Database{
		Driver: config.DriverSQLite,
		URI:    filepath.Join(t.TempDir(), "banco.db"),
		Source: config.SourceSQLite,
	}

	st, err := Open(ctx, db, "", slog.Default())
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.Ping(ctx))

	sess, err := st.Records().Session(ctx)
	require.NoError(t, err)
	defer sess.Close()

	rec, err := sess.Create(ctx, "Ana", 30)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.ID)
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	db := config.Database{Driver: config.DriverSQLite, URI: filepath.Join(t.TempDir(), "banco.db")}

	st, err := Open(ctx, db, "", slog.Default())
	require.NoError(t, err)
	sess, err := st.Records().Session(ctx)
	require.NoError(t, err)
	_, err = sess.Create(ctx, "Ana", 30)
	require.NoError(t, err)
	require.NoError(t, sess.Close())
	require.NoError(t, st.Close())

	// second Open runs migrations again without error
	st, err = Open(ctx, db, "", slog.Default())
	require.NoError(t, err)
	defer st.Close()

	sess, err = st.Records().Session(ctx)
	require.NoError(t, err)
	defer sess.Close()
	records, err := sess.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Database{Driver: "mysql"}, "", slog.Default())
	assert.Error(t, err)
}
