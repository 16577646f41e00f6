package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/weiC29/prediction-web/internal/api"
	"github.com/weiC29/prediction-web/internal/config"
	"github.com/weiC29/prediction-web/internal/logging"
	"github.com/weiC29/prediction-web/internal/review"
	"github.com/weiC29/prediction-web/internal/sheet"
)

// reclaimInterval is how often the background sweeper releases
// expired claims between work requests.
const reclaimInterval = time.Minute

// Daemon serves the review API over HTTP and enforces single-instance
// execution with a lock file. It also runs a periodic sweep that
// releases expired claims even while no reviewer is requesting work.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	store  sheet.Store
	svc    *api.Service
	coord  *review.Coordinator

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	group   *errgroup.Group
	server  *apiServer
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	DatabasePath string
	LockFilePath string
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, store sheet.Store, coord *review.Coordinator, svc *api.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || store == nil || coord == nil || svc == nil || logger == nil {
		return nil, errors.New("daemon requires config, store, coordinator, service, and logger")
	}
	lockPath := filepath.Join(cfg.Paths.LogDir, "predictd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.WithComponent(logger, "daemon"),
		store:    store,
		svc:      svc,
		coord:    coord,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock, heals the sheet schema, and launches
// the API server and the reclaim sweeper.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := review.EnsureColumns(runCtx, d.store); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return fmt.Errorf("ensure admin columns: %w", err)
	}

	server, err := newAPIServer(d.cfg, d, d.logger)
	if err != nil {
		_ = d.lock.Unlock()
		cancel()
		return err
	}
	if err := server.start(runCtx); err != nil {
		_ = d.lock.Unlock()
		cancel()
		return err
	}

	group, groupCtx := errgroup.WithContext(runCtx)
	group.Go(func() error {
		return d.sweepLoop(groupCtx)
	})

	d.cancel = cancel
	d.group = group
	d.server = server
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.Args(logging.String("lock", d.lockPath), logging.String("bind", d.cfg.Paths.APIBind))...)
	return nil
}

// Stop shuts down the API server and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.server != nil {
		d.server.stop()
		d.server = nil
	}
	if d.group != nil {
		_ = d.group.Wait()
		d.group = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Args(logging.Error(err))...)
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	return nil
}

// Addr returns the API server's listen address, useful when the
// configured bind uses an ephemeral port.
func (d *Daemon) Addr() string {
	if d.server == nil || d.server.listener == nil {
		return ""
	}
	return d.server.listener.Addr().String()
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		DatabasePath: d.cfg.DatabasePath(),
		LockFilePath: d.lockPath,
	}
}

func (d *Daemon) sweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(reclaimInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			released, err := d.coord.ReclaimExpired(ctx, time.Now().UTC())
			if err != nil {
				d.logger.Warn("reclaim sweep failed", logging.Args(logging.Error(err))...)
				continue
			}
			if released > 0 {
				d.logger.Info("reclaim sweep released stale claims",
					logging.Args(logging.Int("released", released))...)
			}
		}
	}
}
