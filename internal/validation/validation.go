// Package validation checks client-supplied agent and target descriptions.
package validation

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/pandeptwidyaop/agents-rest/internal/dto"
	"github.com/pandeptwidyaop/agents-rest/internal/models"
)

const (
	// MaxNameLength bounds agent nicknames, target names and roles.
	MaxNameLength = 100
	// MaxPhotoURLLength bounds photo references.
	MaxPhotoURLLength = 2048
)

var (
	// ErrInputRequired indicates a required field is empty.
	ErrInputRequired = errors.New("input is required")
	// ErrInputTooLong indicates input exceeds maximum length.
	ErrInputTooLong = errors.New("input exceeds maximum length")
	// ErrInputInvalid indicates input contains invalid characters.
	ErrInputInvalid = errors.New("input contains invalid characters")
	// ErrPhotoURLInvalid indicates a photo reference is not an http(s) URL.
	ErrPhotoURLInvalid = errors.New("photo url must be an absolute http or https url")
	// ErrLocationOutOfGrid indicates a coordinate pair lies outside the grid.
	ErrLocationOutOfGrid = errors.New("location is outside the grid")
	// ErrDirectionInvalid indicates an unknown compass heading.
	ErrDirectionInvalid = errors.New("direction must be one of n, s, e, w, ne, nw, se, sw")
	// ErrStatusInvalid indicates an unknown status value.
	ErrStatusInvalid = errors.New("status is not recognized")
)

// Letters (any script), digits, spaces, dots, apostrophes, hyphens, underscores.
var validName = regexp.MustCompile(`^[\p{L}\p{N}\s.'\-_]+$`)

// ValidateName validates a display name such as an agent nickname or a target name.
func ValidateName(name string, maxLength int) error {
	if strings.TrimSpace(name) == "" {
		return ErrInputRequired
	}
	if len(name) > maxLength {
		return ErrInputTooLong
	}
	if !validName.MatchString(name) {
		return ErrInputInvalid
	}
	return nil
}

// ValidatePhotoURL accepts an empty reference or an absolute http(s) URL.
func ValidatePhotoURL(raw string) error {
	if raw == "" {
		return nil
	}
	if len(raw) > MaxPhotoURLLength {
		return ErrInputTooLong
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrPhotoURLInvalid
	}
	return nil
}

// ValidateLocation checks that a location lies within a grid of the given size.
func ValidateLocation(loc dto.LocationDto, gridSize int) error {
	if !(models.LocationModel{X: loc.X, Y: loc.Y}).Within(gridSize) {
		return ErrLocationOutOfGrid
	}
	return nil
}

// ValidateDirection parses a wire direction.
func ValidateDirection(raw string) (models.Direction, error) {
	d, ok := models.ParseDirection(raw)
	if !ok {
		return "", ErrDirectionInvalid
	}
	return d, nil
}

// ValidateTarget validates a target description submitted for creation.
// An empty status is allowed; the store defaults it.
func ValidateTarget(t dto.TargetDto, gridSize int) error {
	if err := ValidateName(t.Name, MaxNameLength); err != nil {
		return fieldError("name", err)
	}
	if t.Position != "" {
		if err := ValidateName(t.Position, MaxNameLength); err != nil {
			return fieldError("position", err)
		}
	}
	switch models.TargetStatus(t.Status) {
	case "", models.TargetAlive, models.TargetEliminated:
	default:
		return fieldError("status", ErrStatusInvalid)
	}
	if err := ValidatePhotoURL(t.PhotoURL); err != nil {
		return fieldError("photoUrl", err)
	}
	if err := ValidateLocation(dto.LocationDto{X: t.X, Y: t.Y}, gridSize); err != nil {
		return fieldError("location", err)
	}
	return nil
}

// ValidateAgent validates an agent description submitted for creation.
func ValidateAgent(a dto.AgentDto, gridSize int) error {
	if err := ValidateName(a.Nickname, MaxNameLength); err != nil {
		return fieldError("nickname", err)
	}
	switch models.AgentStatus(a.Status) {
	case "", models.AgentInactive, models.AgentActive:
	default:
		return fieldError("status", ErrStatusInvalid)
	}
	if err := ValidatePhotoURL(a.PhotoURL); err != nil {
		return fieldError("photoUrl", err)
	}
	if err := ValidateLocation(dto.LocationDto{X: a.X, Y: a.Y}, gridSize); err != nil {
		return fieldError("location", err)
	}
	if a.Eliminations < 0 {
		return fieldError("eliminations", ErrInputInvalid)
	}
	return nil
}

// FieldError names the field a validation error applies to.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
