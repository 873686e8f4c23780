// Package stats fetches the network statistics shown on the home page from an
// external JSON endpoint.
package stats

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"finitefield.org/catalog-web/internal/format"
	"finitefield.org/catalog-web/internal/observability"
)

// Stat keys.
const (
	KeyEthPrice          = "eth-price"
	KeyTransactionsToday = "transactions-today"
	KeyValueLockedDefi   = "value-locked-defi"
	KeyNodes             = "nodes"
)

var (
	// ErrUnavailable is returned when no endpoint is configured.
	ErrUnavailable = errors.New("stats: unavailable")
	// ErrUnknownStat is returned for keys the snapshot does not carry.
	ErrUnknownStat = errors.New("stats: unknown stat")
)

const maxPayload = 1 << 20

// Snapshot is one reading of the network statistics.
type Snapshot struct {
	EthPriceUSD        float64
	TransactionsToday  int64
	ValueLockedDefiUSD float64
	Nodes              int64
	UpdatedAt          time.Time
}

// Keys lists every stat in display order.
var Keys = []string{KeyEthPrice, KeyTransactionsToday, KeyValueLockedDefi, KeyNodes}

// Client fetches snapshots and caches a successful one for a short TTL.
// Failures are not cached, so the next request retries the endpoint.
// Concurrent callers share one in-flight fetch.
type Client struct {
	baseURL string
	http    *http.Client
	ttl     time.Duration
	now     func() time.Time
	flight  singleflight.Group

	mu      sync.Mutex
	cached  Snapshot
	expires time.Time
}

// NewClient builds a client for baseURL. With an empty baseURL every lookup
// fails with ErrUnavailable.
func NewClient(baseURL string, timeout, ttl time.Duration) *Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Client{
		baseURL: strings.TrimSpace(baseURL),
		http:    &http.Client{Timeout: timeout},
		ttl:     ttl,
		now:     time.Now,
	}
}

// Values returns the display value of every key in Keys from a single
// snapshot.
func (c *Client) Values(ctx context.Context) (map[string]string, error) {
	snap, err := c.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(Keys))
	for _, key := range Keys {
		v, err := snap.Value(key)
		if err != nil {
			return nil, err
		}
		out[key] = v
	}
	return out, nil
}

// Value formats the stat named key.
func (s Snapshot) Value(key string) (string, error) {
	switch key {
	case KeyEthPrice:
		return "$" + formatDecimal(s.EthPriceUSD), nil
	case KeyTransactionsToday:
		return format.Count(s.TransactionsToday, "en"), nil
	case KeyValueLockedDefi:
		return "$" + compact(s.ValueLockedDefiUSD), nil
	case KeyNodes:
		return format.Count(s.Nodes, "en"), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownStat, key)
}

// Snapshot returns the cached reading or fetches a fresh one. The lock is
// never held across the network call.
func (c *Client) Snapshot(ctx context.Context) (Snapshot, error) {
	if c == nil || c.baseURL == "" {
		return Snapshot{}, ErrUnavailable
	}
	if snap, ok := c.fresh(); ok {
		return snap, nil
	}
	return c.load(ctx, false)
}

// Refresh fetches a new snapshot regardless of the cached one.
func (c *Client) Refresh(ctx context.Context) error {
	if c == nil || c.baseURL == "" {
		return ErrUnavailable
	}
	_, err := c.load(ctx, true)
	return err
}

func (c *Client) fresh() (Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cached, c.now().Before(c.expires)
}

// load runs at most one fetch at a time. Callers that arrive while a fetch is
// in flight wait for its result or for their own ctx.
func (c *Client) load(ctx context.Context, force bool) (Snapshot, error) {
	ch := c.flight.DoChan("snapshot", func() (any, error) {
		if snap, ok := c.fresh(); ok && !force {
			return snap, nil
		}
		// the shared fetch outlives any single caller; the client timeout bounds it
		snap, err := c.fetch(context.WithoutCancel(ctx))
		if err != nil {
			observability.FromContext(ctx).Warn("network stats fetch failed", zap.Error(err))
			return Snapshot{}, err
		}
		c.mu.Lock()
		c.cached = snap
		c.expires = c.now().Add(c.ttl)
		c.mu.Unlock()
		return snap, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot), nil
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	}
}

// StartRefresh refreshes the snapshot on a cron schedule such as "@every 1m"
// so page renders rarely wait on the endpoint. The returned stop function
// waits for a running refresh to finish.
func (c *Client) StartRefresh(spec string, logger *zap.Logger) (func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sched := cron.New()
	_, err := sched.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), c.http.Timeout)
		defer cancel()
		if err := c.Refresh(observability.WithLogger(ctx, logger)); err != nil {
			logger.Debug("scheduled stats refresh failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("stats: schedule %q: %w", spec, err)
	}
	sched.Start()
	return func() { <-sched.Stop().Done() }, nil
}

func (c *Client) fetch(ctx context.Context) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return Snapshot{}, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("stats: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Snapshot{}, fmt.Errorf("stats: remote status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return Snapshot{}, fmt.Errorf("stats: read: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return Snapshot{}, errors.New("stats: decode: invalid json")
	}
	fields := gjson.GetManyBytes(body,
		"eth_price_usd", "transactions_today", "value_locked_defi_usd", "nodes", "updated_at")
	return Snapshot{
		EthPriceUSD:        fields[0].Float(),
		TransactionsToday:  fields[1].Int(),
		ValueLockedDefiUSD: fields[2].Float(),
		Nodes:              fields[3].Int(),
		UpdatedAt:          parseTime(fields[4].String()),
	}, nil
}

// formatDecimal renders v with thousands separators and two decimals.
func formatDecimal(v float64) string {
	cents := int64(math.Round(v * 100))
	return fmt.Sprintf("%s.%02d", format.Count(cents/100, "en"), cents%100)
}

// compact renders large amounts as e.g. "45.2B".
func compact(v float64) string {
	switch {
	case v >= 1e12:
		return fmt.Sprintf("%.1fT", v/1e12)
	case v >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	}
	return format.Count(int64(v), "en")
}

func parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
