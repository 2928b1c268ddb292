package ident

import (
	"strconv"
	"strings"
	"time"
)

// FormatDate renders t with a PHP date()-style pattern, the notation code
// formats are written in ("Ymd", "d/m/Y H:i"). A backslash emits the next
// character literally; characters that are not tokens are copied as-is.
//
// Supported tokens: d j D l N m n M F Y y H G h g i s A a U.
func FormatDate(t time.Time, format string) string {
	var b strings.Builder
	b.Grow(len(format) * 2)

	escaped := false
	for _, r := range format {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}

		switch r {
		case '\\':
			escaped = true
		case 'd':
			b.WriteString(pad2(t.Day()))
		case 'j':
			b.WriteString(strconv.Itoa(t.Day()))
		case 'D':
			b.WriteString(t.Weekday().String()[:3])
		case 'l':
			b.WriteString(t.Weekday().String())
		case 'N':
			wd := int(t.Weekday())
			if wd == 0 {
				wd = 7
			}
			b.WriteString(strconv.Itoa(wd))
		case 'm':
			b.WriteString(pad2(int(t.Month())))
		case 'n':
			b.WriteString(strconv.Itoa(int(t.Month())))
		case 'M':
			b.WriteString(t.Month().String()[:3])
		case 'F':
			b.WriteString(t.Month().String())
		case 'Y':
			b.WriteString(strconv.Itoa(t.Year()))
		case 'y':
			b.WriteString(pad2(t.Year() % 100))
		case 'H':
			b.WriteString(pad2(t.Hour()))
		case 'G':
			b.WriteString(strconv.Itoa(t.Hour()))
		case 'h':
			b.WriteString(pad2(hour12(t.Hour())))
		case 'g':
			b.WriteString(strconv.Itoa(hour12(t.Hour())))
		case 'i':
			b.WriteString(pad2(t.Minute()))
		case 's':
			b.WriteString(pad2(t.Second()))
		case 'A':
			b.WriteString(meridiem(t.Hour()))
		case 'a':
			b.WriteString(strings.ToLower(meridiem(t.Hour())))
		case 'U':
			b.WriteString(strconv.FormatInt(t.Unix(), 10))
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

func hour12(h int) int {
	h %= 12
	if h == 0 {
		return 12
	}
	return h
}

func meridiem(h int) string {
	if h < 12 {
		return "AM"
	}
	return "PM"
}
