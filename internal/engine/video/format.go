package video

import "fmt"

// DateUnavailable is returned by FormatDate when the source has no upload date.
const DateUnavailable = "Fecha no disponible"

// FormatDuration renders seconds as "N minutos M segundos".
// Minutes are not folded into hours.
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%d minutos %d segundos", seconds/60, seconds%60)
}

// FormatDate turns a YYYYMMDD string into YYYY/MM/DD. A nil or empty value
// yields DateUnavailable. Shorter inputs are sliced as far as they go.
func FormatDate(date *string) string {
	if date == nil || *date == "" {
		return DateUnavailable
	}
	s := *date
	return clip(s, 0, 4) + "/" + clip(s, 4, 6) + "/" + clip(s, 6, len(s))
}

func clip(s string, from, to int) string {
	if from > len(s) {
		return ""
	}
	return s[from:min(to, len(s))]
}
