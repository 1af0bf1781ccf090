package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/Lawrencium-103/finstrat/internal/domain/models"
)

// StockRepository defines the contract for all local-store operations.
type StockRepository interface {
	InsertCandlesBatch(ctx context.Context, candles []models.Candle) (int64, error)
	LoadCandles(ctx context.Context, ticker string, limit int) ([]models.Candle, error)
	LatestTimestamp(ctx context.Context, ticker string) (time.Time, bool, error)
	StoreStatus(ctx context.Context) (*StoreStatus, error)
	SavePick(ctx context.Context, pick models.Pick) (bool, error)
	ListPicks(ctx context.Context, timeframe models.Timeframe) ([]models.Pick, error)
}

// StoreStatus summarizes the local store: row/ticker counts and the newest
// bar timestamp across all tickers. HasData is false for an empty store.
type StoreStatus struct {
	Candles int64
	Tickers int64
	Latest  time.Time
	HasData bool
}

type stockRepository struct {
	db *sql.DB
}

func NewStockRepository(db *sql.DB) StockRepository {
	return &stockRepository{db: db}
}

// InsertCandlesBatch appends candles in a single transaction and returns the
// number of rows actually inserted.
//
// INSERT OR IGNORE on the (ticker, timestamp) primary key makes the batch
// idempotent: re-fetching an overlapping window never duplicates or rewrites
// stored bars. A failure rolls the whole batch back, so a partial fetch can
// never leave partial rows behind.
func (r *stockRepository) InsertCandlesBatch(ctx context.Context, candles []models.Candle) (int64, error) {
	if len(candles) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO candles (ticker, ts, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}

	var inserted int64
	for _, c := range candles {
		res, err := stmt.ExecContext(ctx,
			c.Ticker,
			c.Timestamp.UTC(),
			c.Open,
			c.High,
			c.Low,
			c.Close,
			c.Volume,
		)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return 0, err
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += n
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

// LoadCandles returns a ticker's bars in ascending timestamp order. A limit
// above zero keeps only the most recent bars (still returned ascending, so
// indicator windows line up).
func (r *stockRepository) LoadCandles(ctx context.Context, ticker string, limit int) ([]models.Candle, error) {
	query := `
		SELECT ticker, ts, open, high, low, close, volume
		FROM candles
		WHERE ticker = ?
		ORDER BY ts ASC
	`
	args := []interface{}{ticker}
	if limit > 0 {
		query = `
		SELECT ticker, ts, open, high, low, close, volume FROM (
			SELECT ticker, ts, open, high, low, close, volume
			FROM candles
			WHERE ticker = ?
			ORDER BY ts DESC
			LIMIT ?
		) ORDER BY ts ASC
	`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Candle
	for rows.Next() {
		var c models.Candle
		if err := rows.Scan(&c.Ticker, &c.Timestamp, &c.Open, &c.High, &c.Low, &c.Close, &c.Volume); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// LatestTimestamp returns the newest stored bar time for a ticker. The bool
// is false when the ticker has no rows at all.
func (r *stockRepository) LatestTimestamp(ctx context.Context, ticker string) (time.Time, bool, error) {
	var ts sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(ts) FROM candles WHERE ticker = ?`, ticker,
	).Scan(&ts)
	if err != nil {
		return time.Time{}, false, err
	}
	if !ts.Valid {
		return time.Time{}, false, nil
	}
	return ts.Time, true, nil
}

// StoreStatus reports global store freshness in one query.
func (r *stockRepository) StoreStatus(ctx context.Context) (*StoreStatus, error) {
	var st StoreStatus
	var latest sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT ticker), MAX(ts) FROM candles
	`).Scan(&st.Candles, &st.Tickers, &latest)
	if err != nil {
		return nil, err
	}
	if latest.Valid {
		st.Latest = latest.Time
		st.HasData = true
	}
	return &st, nil
}

// SavePick records a pick unless one already exists for the same
// (pick_date, ticker, strategy, timeframe). Returns true when a row was
// written, false when the duplicate guard suppressed it.
func (r *stockRepository) SavePick(ctx context.Context, pick models.Pick) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO picks
			(pick_date, ticker, strategy, timeframe, entry_price, target_price, score, signals)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		pick.PickDate,
		pick.Ticker,
		string(pick.Strategy),
		string(pick.Timeframe),
		pick.EntryPrice,
		pick.TargetPrice,
		pick.Score,
		pick.Signals,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListPicks returns saved picks newest-first, optionally filtered by timeframe.
func (r *stockRepository) ListPicks(ctx context.Context, timeframe models.Timeframe) ([]models.Pick, error) {
	query := `
		SELECT id, pick_date, ticker, strategy, timeframe, entry_price, target_price, score, signals
		FROM picks
	`
	var args []interface{}
	if timeframe != "" {
		query += ` WHERE timeframe = ?`
		args = append(args, string(timeframe))
	}
	query += ` ORDER BY pick_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Pick
	for rows.Next() {
		var p models.Pick
		if err := rows.Scan(&p.ID, &p.PickDate, &p.Ticker, &p.Strategy, &p.Timeframe,
			&p.EntryPrice, &p.TargetPrice, &p.Score, &p.Signals); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
