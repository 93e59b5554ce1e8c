package weather

import "strings"

type iconPair struct {
	day, night string
}

// single is used for codes that have no night variant.
func single(icon string) iconPair {
	return iconPair{day: icon, night: icon}
}

// iconTable maps WeatherAPI condition codes to OpenWeatherMap-style icon ids.
var iconTable = map[int]iconPair{
	1000: {"01d", "01n"}, // clear
	1003: {"02d", "02n"}, // partly cloudy
	1006: {"03d", "03n"}, // cloudy
	1009: single("04d"),  // overcast
	1030: single("50d"),  // mist
	1063: single("09d"),
	1066: single("13d"),
	1069: single("13d"),
	1072: single("09d"),
	1087: single("11d"),
	1114: single("13d"),
	1117: single("13d"), // blizzard
	1135: single("50d"), // fog
	1147: single("50d"),
	1150: single("09d"),
	1153: single("09d"),
	1168: single("09d"),
	1171: single("09d"),
	1180: single("09d"),
	1183: single("09d"),
	1186: single("10d"),
	1189: single("10d"),
	1192: single("10d"),
	1195: single("10d"),
	1198: single("09d"),
	1201: single("09d"),
	1204: single("13d"), // sleet
	1207: single("13d"),
	1210: single("13d"),
	1213: single("13d"),
	1216: single("13d"),
	1219: single("13d"),
	1222: single("13d"),
	1225: single("13d"),
	1237: single("13d"), // ice pellets
	1240: single("09d"),
	1243: single("10d"),
	1246: single("10d"),
	1249: single("13d"),
	1252: single("13d"),
	1255: single("13d"),
	1258: single("13d"),
	1261: single("13d"),
	1264: single("13d"),
	1273: single("11d"),
	1276: single("11d"),
	1279: single("11d"),
	1282: single("11d"),
}

// IconFor returns the icon id for a provider condition code. Unknown codes
// fall back to the clear-sky icon for the given time of day.
func IconFor(code int, isDay bool) string {
	p, ok := iconTable[code]
	if !ok {
		p = iconTable[1000]
	}
	if isDay {
		return p.day
	}
	return p.night
}

// CategoryFor groups an icon id into a coarse condition category.
func CategoryFor(icon string) Category {
	switch {
	case strings.HasPrefix(icon, "01"):
		return CategoryClear
	case strings.HasPrefix(icon, "02"), strings.HasPrefix(icon, "03"), strings.HasPrefix(icon, "04"):
		return CategoryCloudy
	case strings.HasPrefix(icon, "09"), strings.HasPrefix(icon, "10"):
		return CategoryRain
	case strings.HasPrefix(icon, "11"):
		return CategoryStorm
	case strings.HasPrefix(icon, "13"):
		return CategorySnow
	case strings.HasPrefix(icon, "50"):
		return CategoryMist
	default:
		return CategoryUnknown
	}
}

func conditionFor(raw RawCondition, isDay int) Condition {
	icon := IconFor(raw.Code, isDay == 1)
	return Condition{
		Code:        raw.Code,
		Text:        raw.Text,
		Description: strings.ToLower(raw.Text),
		Icon:        icon,
		Category:    CategoryFor(icon),
	}
}
