package notify

import (
	"fmt"
	"strings"
	"time"

	"piqueunique/pkg/model"
)

// invite UIDs are anchored to the business domain so re-sent invites
// update the same calendar entry.
const inviteUIDDomain = "pique-unique.lt"

var locationNames = map[string]string{
	"juodkrante": "Juodkrantė",
	"nida":       "Nida",
	"klaipeda":   "Klaipėda",
	"palanga":    "Palanga",
	"svencele":   "Svencelė",
	"other":      "Kita vieta",
}

// RenderInvite builds the ICS calendar attachment for a booking. The event
// spans the fixed 3-hour slot window in Lithuanian wall time.
func RenderInvite(booking *model.Booking, now time.Time) (string, error) {
	start, err := slotStart(booking.Date, booking.Time)
	if err != nil {
		return "", err
	}
	end := start.Add(model.SlotDuration)

	location := locationNames[booking.Location]
	if location == "" {
		location = booking.Location
	}

	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Pique Unique//Booking//LT",
		"CALSCALE:GREGORIAN",
		"METHOD:REQUEST",
		"BEGIN:VEVENT",
		fmt.Sprintf("UID:%s@%s", booking.ID, inviteUIDDomain),
		fmt.Sprintf("DTSTAMP:%s", now.UTC().Format("20060102T150405Z")),
		fmt.Sprintf("DTSTART;TZID=Europe/Vilnius:%s", start.Format("20060102T150405")),
		fmt.Sprintf("DTEND;TZID=Europe/Vilnius:%s", end.Format("20060102T150405")),
		fmt.Sprintf("SUMMARY:Pikniko rezervacija: %s", location),
		fmt.Sprintf("LOCATION:%s", location),
		fmt.Sprintf("DESCRIPTION:Tema: %s\\nSvečių skaičius: %d", booking.Theme, booking.GuestCount),
		"STATUS:CONFIRMED",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	// RFC 5545 requires CRLF line endings.
	return strings.Join(lines, "\r\n") + "\r\n", nil
}

// slotStart combines the calendar date with the slot-start label.
func slotStart(date time.Time, slot string) (time.Time, error) {
	parsed, err := time.Parse("15:04", slot)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot label %q: %w", slot, err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, time.UTC,
	), nil
}
