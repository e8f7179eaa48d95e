package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

const testSQL = `SELECT * FROM "groceries" WHERE id = 'abc'`

func sqlFn(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_HidesSQLByDefault(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Info)

	l.Trace(context.Background(), time.Now(), sqlFn(testSQL), nil)

	entry := recorded.FilterMessage("SQL Query").All()[0]
	fields := fieldMap(entry)
	assert.Equal(t, "SELECT", fields["sql_op"])
	assert.NotContains(t, fields, "sql")
}

func TestGormLogger_FullSQL(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Info, WithFullSQL(true))

	l.Trace(context.Background(), time.Now(), sqlFn(testSQL), nil)

	assert.Equal(t, testSQL, fieldMap(recorded.All()[0])["sql"])
}

func TestGormLogger_SlowQuery(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Warn, WithSlowThreshold(10*time.Millisecond))

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn(testSQL), nil)

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_Errors(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Error)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")

	l.Trace(ctx, time.Now(), sqlFn(testSQL), gormlogger.ErrRecordNotFound)
	l.Trace(ctx, time.Now(), sqlFn(testSQL), errors.New("deadlock detected"))

	entries := recorded.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-7", fieldMap(entries[0])["request_id"])
}

func TestGormLogger_Silent(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core), gormlogger.Info).LogMode(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), sqlFn(testSQL), errors.New("boom"))

	assert.Zero(t, recorded.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel(""))
}
