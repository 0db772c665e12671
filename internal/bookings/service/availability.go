package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"piqueunique/internal/bookings/repository"
	apperrors "piqueunique/pkg/errors"
	"piqueunique/pkg/logger"
	"piqueunique/pkg/model"
)

var validLocations = map[string]struct{}{
	"juodkrante": {},
	"nida":       {},
	"klaipeda":   {},
	"palanga":    {},
	"svencele":   {},
	"other":      {},
}

var slotOrder = map[string]int{}

func init() {
	for i, slot := range model.TimeSlots {
		slotOrder[slot] = i
	}
}

// AvailabilityService answers "which slots and dates are taken" queries.
// It is read-only and public: anonymous visitors browse availability
// before signing in.
type AvailabilityService struct {
	bookings repository.BookingRepository
	logger   *logger.Logger
}

func NewAvailabilityService(bookings repository.BookingRepository, log *logger.Logger) *AvailabilityService {
	return &AvailabilityService{
		bookings: bookings,
		logger:   log,
	}
}

// BookedTimes returns the occupied slot-start labels at a location on one
// calendar date, in slot order.
func (s *AvailabilityService) BookedTimes(ctx context.Context, location, date string) ([]string, error) {
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	dayStart, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	raw, err := s.bookings.BookedTimes(ctx, location, dayStart, dayEnd)
	if err != nil {
		s.logger.Error("Failed to query booked times",
			"location", location,
			"date", date,
			"error", err,
		)
		return nil, apperrors.Internal("failed to query availability", err)
	}

	seen := make(map[string]struct{}, len(raw))
	times := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		times = append(times, t)
	}
	sort.Slice(times, func(i, j int) bool {
		return slotOrder[times[i]] < slotOrder[times[j]]
	})

	return times, nil
}

// BookedDates returns the distinct occupied dates at a location within an
// inclusive window, formatted as YYYY-MM-DD and sorted ascending.
func (s *AvailabilityService) BookedDates(ctx context.Context, location, from, to string) ([]string, error) {
	if err := validateLocation(location); err != nil {
		return nil, err
	}

	fromDate, err := parseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, apperrors.InvalidInput("date range end precedes start")
	}
	toDate = toDate.Add(24*time.Hour - time.Nanosecond)

	raw, err := s.bookings.BookedDates(ctx, location, fromDate, toDate)
	if err != nil {
		s.logger.Error("Failed to query booked dates",
			"location", location,
			"from", from,
			"to", to,
			"error", err,
		)
		return nil, apperrors.Internal("failed to query availability", err)
	}

	seen := make(map[string]struct{}, len(raw))
	dates := make([]string, 0, len(raw))
	for _, d := range raw {
		key := d.Format(model.DateOnly)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}
	sort.Strings(dates)

	return dates, nil
}

func validateLocation(location string) error {
	if _, ok := validLocations[location]; !ok {
		return apperrors.Validation(
			fmt.Sprintf("unknown location: %s", location),
			map[string]any{"field": "location"},
		)
	}
	return nil
}

func parseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(model.DateOnly, date)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput(
			fmt.Sprintf("date must be formatted as %s", model.DateOnly),
		)
	}
	return parsed.UTC(), nil
}
