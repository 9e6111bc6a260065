package handlers

import (
	"time"

	"github.com/agendahub/agenda-api/internal/models"
	"github.com/agendahub/agenda-api/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por prestador
// --------------------------------------------------

// resolve o fuso oficial do prestador
func locationFromProvider(provider *models.Provider) *time.Location {
	if provider != nil {
		return timezone.Location(provider.Timezone)
	}
	return timezone.Location("")
}

func parseDateInProvider(provider *models.Provider, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromProvider(provider),
	)
}

func parseDateTimeInProvider(
	provider *models.Provider,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromProvider(provider),
	)
}
