package lookup

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const iconURLTemplate = "https://openweathermap.org/img/wn/%s@2x.png"

// Request is the raw form input. Both fields must be non-empty.
type Request struct {
	City        string
	CountryCode string
}

// Result is the display model of a successful lookup, in whole degrees Celsius.
type Result struct {
	LocationName    string
	TemperatureC    int
	TemperatureMinC int
	TemperatureMaxC int
	IconCode        string
}

func (r Result) IconURL() string {
	return fmt.Sprintf(iconURLTemplate, r.IconCode)
}

// KelvinToCelsius rounds half up, so 272.65K gives 0 and not -1.
func KelvinToCelsius(kelvin float64) int {
	return int(math.Floor(kelvin - 273.15 + 0.5))
}

type Phase int

const (
	Idle Phase = iota
	Loading
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

type ErrorKind int

const (
	ValidationFailed ErrorKind = iota + 1
	NotFound
	TransportFailure
)

func (k ErrorKind) String() string {
	switch k {
	case ValidationFailed:
		return "validation_failed"
	case NotFound:
		return "not_found"
	case TransportFailure:
		return "transport_failure"
	default:
		return fmt.Sprintf("error_kind(%d)", int(k))
	}
}

// Message is the user-facing text. TransportFailure has none.
func (k ErrorKind) Message() string {
	switch k {
	case ValidationFailed:
		return "Ambos campos son obligatorios..."
	case NotFound:
		return "Ciudad no encontrada..."
	default:
		return ""
	}
}

// Error is returned by Submit for every failed lookup. Match a kind with
// errors.Is against ErrValidationFailed, ErrNotFound or ErrTransportFailure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrValidationFailed = &Error{Kind: ValidationFailed}
	ErrNotFound         = &Error{Kind: NotFound}
	ErrTransportFailure = &Error{Kind: TransportFailure}

	// ErrSuperseded is returned to a submission whose response arrived after a
	// newer submission started. Its response is dropped.
	ErrSuperseded = errors.New("lookup superseded by a newer submission")
	ErrClosed     = errors.New("lookup closed")
)

// Notification is a transient message shown to the user until ExpiresAt.
type Notification struct {
	Kind      ErrorKind
	Message   string
	ExpiresAt time.Time
}

// Snapshot is a copy of the controller state for the presentation layer.
// Result and Notification are never both set.
type Snapshot struct {
	Phase        Phase
	Result       *Result
	Notification *Notification
}
