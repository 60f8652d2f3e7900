package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/foliokit/folio"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB creates a fresh database in a temp directory.
func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "folio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestSQLiteSheetLifecycle(t *testing.T) {
	db := openTestDB(t)
	headers := []string{"A", "B", "C"}

	require.NoError(t, db.EnsureSchema("demo", headers))
	// EnsureSchema is idempotent
	require.NoError(t, db.EnsureSchema("demo", headers))

	require.NoError(t, db.Append("demo", []string{"1", "2", "3"}))
	require.NoError(t, db.Append("demo", []string{"4", "5", "6"}))

	gotHeaders, rows, err := db.ReadAll("demo")
	require.NoError(t, err)
	assert.Equal(t, headers, gotHeaders)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "2", "3"}, rows[0])
	assert.Equal(t, []string{"4", "5", "6"}, rows[1])
}

func TestSQLiteUpdateAndDelete(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.EnsureSchema("demo", []string{"A", "B"}))
	require.NoError(t, db.Append("demo", []string{"r0a", "r0b"}))
	require.NoError(t, db.Append("demo", []string{"r1a", "r1b"}))

	require.NoError(t, db.UpdateCell("demo", 1, 0, "patched"))
	_, rows, err := db.ReadAll("demo")
	require.NoError(t, err)
	assert.Equal(t, "patched", rows[1][0])

	require.NoError(t, db.DeleteRow("demo", 0))
	_, rows, err = db.ReadAll("demo")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "patched", rows[0][0], "remaining row shifts to index 0")
}

func TestSQLiteErrors(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, db.EnsureSchema("demo", []string{"A"}))

	_, _, err := db.ReadAll("missing")
	assert.Error(t, err, "reading an unknown sheet fails")

	assert.Error(t, db.Append("demo", []string{"too", "many"}), "cell count must match headers")
	assert.ErrorIs(t, db.UpdateCell("demo", 9, 0, "x"), ErrRowNotFound)
	assert.ErrorIs(t, db.DeleteRow("demo", 9), ErrRowNotFound)
	assert.Error(t, db.EnsureSchema("not a sheet!", []string{"A"}), "sheet names are restricted")
}

func TestLedgerStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ls, err := NewLedgerStore(db)
	require.NoError(t, err)

	on := folio.NewDate(2024, time.January, 5)
	require.NoError(t, ls.Append(folio.NewDeposit(on, dec(t, "1000"))))
	require.NoError(t, ls.Append(folio.NewBuy(on.Add(1), "AAPL", dec(t, "10"), dec(t, "150"))))

	ledger, err := ls.Load()
	require.NoError(t, err)
	require.Equal(t, 2, ledger.Len())

	var kinds []folio.TxKind
	for _, tx := range ledger.Transactions() {
		kinds = append(kinds, tx.Kind)
	}
	assert.Equal(t, []folio.TxKind{folio.KindDeposit, folio.KindBuy}, kinds)
}

func TestLedgerStoreSkipsBadRows(t *testing.T) {
	db := openTestDB(t)
	ls, err := NewLedgerStore(db)
	require.NoError(t, err)

	require.NoError(t, ls.Append(folio.NewDeposit(folio.NewDate(2024, time.January, 5), dec(t, "1000"))))
	// a hand-edited row with a meaningless kind
	require.NoError(t, db.Append("transactions", []string{"2024-01-06", "AAPL", "split", "10", "0"}))

	ledger, err := ls.Load()
	require.NoError(t, err, "one bad row must not abort the load")
	assert.Equal(t, 1, ledger.Len())
}

func TestLedgerStoreRewrite(t *testing.T) {
	db := openTestDB(t)
	ls, err := NewLedgerStore(db)
	require.NoError(t, err)

	on := folio.NewDate(2024, time.January, 5)
	require.NoError(t, ls.Append(folio.NewDeposit(on, dec(t, "1000"))))
	require.NoError(t, ls.Append(folio.NewBuy(on, "AAPL", dec(t, "10"), dec(t, "150"))))

	replacement := folio.NewLedger(
		folio.NewDeposit(on, dec(t, "5000")),
	)
	require.NoError(t, ls.Rewrite(replacement))

	ledger, err := ls.Load()
	require.NoError(t, err)
	require.Equal(t, 1, ledger.Len())
	assert.True(t, ledger.CashBalance(on).Equal(dec(t, "5000")))
}

func setupAlertStore(t *testing.T) (*AlertStore, folio.Alert) {
	t.Helper()
	db := openTestDB(t)
	as, err := NewAlertStore(db)
	require.NoError(t, err)

	a := folio.NewAlert("AAPL", decimal.NewFromInt(200), folio.Above, "me@example.com", "take profit")
	require.NoError(t, as.Add(a))
	return as, a
}

func TestAlertStoreRoundTrip(t *testing.T) {
	as, a := setupAlertStore(t)

	got, err := as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Ticker, got.Ticker)
	assert.True(t, got.Target.Equal(a.Target))
	assert.Equal(t, folio.Above, got.Direction)
	assert.Equal(t, folio.StatusActive, got.Status)
	assert.Equal(t, []string{"me@example.com"}, got.Subscribers)
	assert.Equal(t, "take profit", got.Note)
	assert.True(t, got.LastChecked.IsZero(), "a fresh alert was never checked")
}

func TestAlertStoreStateMachine(t *testing.T) {
	as, a := setupAlertStore(t)
	on := folio.NewDate(2024, time.June, 3)

	require.NoError(t, as.MarkSent(a.ID, on))
	got, err := as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, folio.StatusSent, got.Status)
	assert.Equal(t, on, got.LastChecked)

	require.NoError(t, as.Reactivate(a.ID))
	got, err = as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, folio.StatusActive, got.Status)
	assert.Equal(t, on, got.LastChecked, "reactivation keeps the last-checked stamp")
}

func TestAlertStoreTouch(t *testing.T) {
	as, a := setupAlertStore(t)
	on := folio.NewDate(2024, time.June, 4)

	require.NoError(t, as.Touch(a.ID, on))
	got, err := as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, folio.StatusActive, got.Status, "touch never changes status")
	assert.Equal(t, on, got.LastChecked)
}

func TestAlertStoreSubscriptions(t *testing.T) {
	as, a := setupAlertStore(t)

	require.NoError(t, as.Subscribe(a.ID, "friend@example.com"))
	// duplicate subscribe is a no-op success
	require.NoError(t, as.Subscribe(a.ID, "FRIEND@example.com"))

	got, err := as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"me@example.com", "friend@example.com"}, got.Subscribers)

	require.NoError(t, as.Unsubscribe(a.ID, "friend@example.com"))
	// unknown member is a no-op success
	require.NoError(t, as.Unsubscribe(a.ID, "stranger@example.com"))

	got, err = as.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"me@example.com"}, got.Subscribers)
}

func TestAlertStoreDelete(t *testing.T) {
	as, a := setupAlertStore(t)

	require.NoError(t, as.Delete(a.ID))
	_, err := as.Get(a.ID)
	assert.ErrorIs(t, err, ErrRowNotFound)

	alerts, err := as.List()
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestAlertStoreUnknownID(t *testing.T) {
	as, _ := setupAlertStore(t)
	assert.ErrorIs(t, as.MarkSent("no-such-id", folio.Today()), ErrRowNotFound)
}
