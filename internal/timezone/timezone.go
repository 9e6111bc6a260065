package timezone

import "time"

// Fuso padrão quando o prestador não configurou o seu
const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolve o fuso ou cai no padrão; nunca devolve nil
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func Now() time.Time {
	return NowIn(DefaultTimezone)
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
