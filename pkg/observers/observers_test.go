package observers

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/selectdb/feed_observer/pkg/stock"
	"github.com/selectdb/feed_observer/pkg/storage"
	"github.com/selectdb/feed_observer/pkg/subject"
	"github.com/selectdb/feed_observer/pkg/utils"
	"github.com/selectdb/feed_observer/pkg/weather"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	log.SetOutput(io.Discard)
}

func TestMulti(t *testing.T) {
	var got []string
	errA := errors.New("a failed")
	errC := errors.New("c failed")
	record := func(name string, err error) utils.Observer[int] {
		return utils.ObserverFunc[int](func(int) error {
			got = append(got, name)
			return err
		})
	}

	m := NewMulti[int]("displays", record("a", errA), nil, record("b", nil), record("c", errC))
	assert.Equal(t, "displays", m.Name())

	err := m.Update(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Equal(t, []error{errA, errC}, multierr.Errors(err))

	got = nil
	assert.NoError(t, NewMulti[int]("ok", record("b", nil)).Update(2))
}

func TestMultiAttachedOnce(t *testing.T) {
	s := subject.New[int]("counter", 0)
	var calls int
	count := utils.ObserverFunc[int](func(int) error {
		calls++
		return nil
	})

	s.Attach(NewMulti[int]("pair", count, count))
	require.NoError(t, s.SetState(1))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, s.Len())
}

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	z := NewZapLogger[stock.Quote]("AAPL", zap.New(core))
	assert.Equal(t, "ZapLogger(AAPL)", z.Name())

	apple, err := stock.NewStockPrice("AAPL", 100)
	require.NoError(t, err)
	apple.Attach(z)
	require.NoError(t, apple.SetPrice(101))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "state changed", entries[0].Message)
	assert.Equal(t, "snapshot", entries[0].LoggerName)
	assert.Equal(t, "AAPL", entries[0].ContextMap()["subject"])
}

func TestZapLoggerNil(t *testing.T) {
	assert.NoError(t, NewZapLogger[int]("counter", nil).Update(1))
}

func testRecorder(t *testing.T, db storage.DB) {
	station := weather.NewStation("station")
	recorder, err := NewRecorder[weather.Measurements]("station", db)
	require.NoError(t, err)
	station.Attach(recorder)

	require.NoError(t, station.SetMeasurements(20, 50, 1010))
	require.NoError(t, station.SetMeasurements(25, 55, 1012))

	history, err := recorder.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 20.0, history[0].Temperature)
	assert.Equal(t, 1012.0, history[1].Pressure)

	// a new recorder on the same storage continues the sequence
	resumed, err := NewRecorder[weather.Measurements]("station", db)
	require.NoError(t, err)
	require.NoError(t, resumed.Update(weather.Measurements{Temperature: 30, Humidity: 60, Pressure: 1000}))

	last, err := db.LastSeq("station")
	require.NoError(t, err)
	assert.Equal(t, int64(2), last)

	history, err = resumed.History()
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestRecorderMemory(t *testing.T) {
	testRecorder(t, storage.NewMemoryDB())
}

func TestRecorderSQLite(t *testing.T) {
	db, err := storage.NewSQLiteDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	defer db.Close()

	testRecorder(t, db)
}

func TestRecorderMarshalError(t *testing.T) {
	recorder, err := NewRecorder[chan int]("chan", storage.NewMemoryDB())
	require.NoError(t, err)
	assert.Error(t, recorder.Update(make(chan int)))
}

func TestLatest(t *testing.T) {
	latest := NewLatest(func(q stock.Quote) string { return q.Symbol }, 0)

	_, ok, err := latest.Get("AAPL")
	require.NoError(t, err)
	assert.False(t, ok)

	apple, err := stock.NewStockPrice("AAPL", 100)
	require.NoError(t, err)
	google, err := stock.NewStockPrice("GOOG", 2800)
	require.NoError(t, err)
	apple.Attach(latest)
	google.Attach(latest)

	require.NoError(t, apple.SetPrice(101))
	require.NoError(t, apple.SetPrice(102))
	require.NoError(t, google.SetPrice(2790))

	q, ok, err := latest.Get("AAPL")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 102.0, q.Price)
	assert.Equal(t, 101.0, q.PreviousPrice)

	q, ok, err = latest.Get("GOOG")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2790.0, q.Price)
}

func TestLatestExpiration(t *testing.T) {
	latest := NewLatest(func(v int) string { return "counter" }, 50*time.Millisecond)
	require.NoError(t, latest.Update(1))

	v, ok, err := latest.Get("counter")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	time.Sleep(100 * time.Millisecond)
	_, ok, err = latest.Get("counter")
	require.NoError(t, err)
	assert.False(t, ok)
}
