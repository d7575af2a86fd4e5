package lookup

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/clima/internal/db/lookuplog"
	"ulascansenturk/clima/internal/providers"
)

const DefaultNotificationDuration = 3 * time.Second

// WeatherLookup owns the state of one form: its phase, the last result and
// the transient notification. Only the latest submission may change it.
type WeatherLookup struct {
	provider        providers.WeatherProvider
	recorder        lookuplog.Repository
	notificationTTL time.Duration

	mu           sync.Mutex
	phase        Phase
	result       *Result
	notification *Notification
	generation   uint64
	cancelFlight context.CancelFunc
	clearTimer   *time.Timer
	observers    []func(Snapshot)
	closed       bool
}

// NewWeatherLookup returns an Idle controller. recorder may be nil.
func NewWeatherLookup(
	provider providers.WeatherProvider,
	recorder lookuplog.Repository,
	notificationTTL time.Duration,
) *WeatherLookup {
	if notificationTTL <= 0 {
		notificationTTL = DefaultNotificationDuration
	}

	return &WeatherLookup{
		provider:        provider,
		recorder:        recorder,
		notificationTTL: notificationTTL,
		phase:           Idle,
	}
}

// Observe registers fn to be called with the new state after every transition.
func (l *WeatherLookup) Observe(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.observers = append(l.observers, fn)
}

func (l *WeatherLookup) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

// Submit validates req, fetches the weather and blocks until the lookup
// resolves. The returned snapshot is the state after this submission. A
// transport failure is logged and returned but leaves no notification.
func (l *WeatherLookup) Submit(ctx context.Context, req Request) (Snapshot, error) {
	l.mu.Lock()
	if l.closed {
		snap := l.snapshotLocked()
		l.mu.Unlock()
		return snap, ErrClosed
	}

	gen := l.beginLocked()
	l.result = nil
	l.notification = nil

	if req.City == "" || req.CountryCode == "" {
		l.phase = Idle
		l.notifyLocked(ValidationFailed, gen)
		snap := l.snapshotLocked()
		l.mu.Unlock()

		l.publish(snap)
		return snap, &Error{Kind: ValidationFailed}
	}

	flightCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	l.cancelFlight = cancel
	l.phase = Loading
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.publish(snap)

	weather, err := l.provider.GetCurrentWeather(flightCtx, req.City, req.CountryCode)

	l.mu.Lock()
	if gen != l.generation {
		closed := l.closed
		snap := l.snapshotLocked()
		l.mu.Unlock()

		if closed {
			return snap, ErrClosed
		}

		log.Debug().
			Str("city", req.City).
			Str("country_code", req.CountryCode).
			Msg("discarding stale weather response")
		return snap, ErrSuperseded
	}
	l.cancelFlight = nil

	var lookupErr *Error
	switch {
	case err == nil:
		result := newResult(weather)
		l.result = &result
		l.phase = Succeeded
	case errors.Is(err, providers.ErrLocationNotFound):
		lookupErr = &Error{Kind: NotFound, Err: err}
		l.phase = Failed
		l.notifyLocked(NotFound, gen)
	default:
		lookupErr = &Error{Kind: TransportFailure, Err: err}
		l.phase = Idle
	}
	snap = l.snapshotLocked()
	l.mu.Unlock()

	if lookupErr != nil && lookupErr.Kind == TransportFailure {
		log.Error().
			Err(err).
			Str("city", req.City).
			Str("country_code", req.CountryCode).
			Msg("weather lookup failed")
	}

	l.publish(snap)
	l.record(req, snap, lookupErr)

	if lookupErr != nil {
		return snap, lookupErr
	}
	return snap, nil
}

// Close cancels the in-flight request and pending timers. Later submissions
// fail with ErrClosed.
func (l *WeatherLookup) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	l.closed = true
	l.beginLocked()
}

// beginLocked starts a new generation, invalidating the in-flight request
// and any pending notification timer.
func (l *WeatherLookup) beginLocked() uint64 {
	l.generation++

	if l.clearTimer != nil {
		l.clearTimer.Stop()
		l.clearTimer = nil
	}

	if l.cancelFlight != nil {
		l.cancelFlight()
		l.cancelFlight = nil
	}

	return l.generation
}

func (l *WeatherLookup) notifyLocked(kind ErrorKind, gen uint64) {
	l.notification = &Notification{
		Kind:      kind,
		Message:   kind.Message(),
		ExpiresAt: time.Now().Add(l.notificationTTL),
	}

	l.clearTimer = time.AfterFunc(l.notificationTTL, func() {
		l.expireNotification(gen)
	})
}

func (l *WeatherLookup) expireNotification(gen uint64) {
	l.mu.Lock()
	if gen != l.generation || l.notification == nil {
		l.mu.Unlock()
		return
	}

	l.notification = nil
	l.clearTimer = nil
	if l.phase == Failed {
		l.phase = Idle
	}
	snap := l.snapshotLocked()
	l.mu.Unlock()

	l.publish(snap)
}

func (l *WeatherLookup) snapshotLocked() Snapshot {
	snap := Snapshot{Phase: l.phase}

	if l.result != nil {
		result := *l.result
		snap.Result = &result
	}

	if l.notification != nil {
		notification := *l.notification
		snap.Notification = &notification
	}

	return snap
}

func (l *WeatherLookup) publish(snap Snapshot) {
	l.mu.Lock()
	observers := make([]func(Snapshot), len(l.observers))
	copy(observers, l.observers)
	l.mu.Unlock()

	for _, fn := range observers {
		fn(snap)
	}
}

func (l *WeatherLookup) record(req Request, snap Snapshot, lookupErr *Error) {
	if l.recorder == nil {
		return
	}

	record := lookuplog.LookupRecord{
		City:        req.City,
		CountryCode: req.CountryCode,
		CreatedAt:   time.Now(),
	}

	switch {
	case lookupErr == nil && snap.Result != nil:
		temp := snap.Result.TemperatureC
		record.Outcome = lookuplog.OutcomeSucceeded
		record.LocationName = snap.Result.LocationName
		record.TemperatureC = &temp
		record.IconCode = snap.Result.IconCode
	case lookupErr != nil && lookupErr.Kind == NotFound:
		record.Outcome = lookuplog.OutcomeNotFound
	default:
		record.Outcome = lookuplog.OutcomeTransportFailure
	}

	go func() {
		if err := l.recorder.LogLookup(record); err != nil {
			log.Error().Err(err).Msg("Failed to log weather lookup")
		}
	}()
}

func newResult(w *providers.CurrentWeather) Result {
	return Result{
		LocationName:    w.Name,
		TemperatureC:    KelvinToCelsius(w.Main.Temp),
		TemperatureMinC: KelvinToCelsius(w.Main.TempMin),
		TemperatureMaxC: KelvinToCelsius(w.Main.TempMax),
		IconCode:        w.Icon(),
	}
}
