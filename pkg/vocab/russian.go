package vocab

// Russian returns the built-in Russian vocabulary. Month names are listed in
// both the nominative and the genitive case ("март", "марта").
func Russian() *Vocabulary {
	return &Vocabulary{
		Language: LanguageRussian,
		Months: map[string]int{
			"январь": 1, "января": 1, "янв": 1, "янв.": 1,
			"февраль": 2, "февраля": 2, "фев": 2, "фев.": 2,
			"март": 3, "марта": 3, "мар": 3, "мар.": 3,
			"апрель": 4, "апреля": 4, "апр": 4, "апр.": 4,
			"май": 5, "мая": 5,
			"июнь": 6, "июня": 6, "июн": 6, "июн.": 6,
			"июль": 7, "июля": 7, "июл": 7, "июл.": 7,
			"август": 8, "августа": 8, "авг": 8, "авг.": 8,
			"сентябрь": 9, "сентября": 9, "сен": 9, "сен.": 9,
			"октябрь": 10, "октября": 10, "окт": 10, "окт.": 10,
			"ноябрь": 11, "ноября": 11, "ноя": 11, "ноя.": 11,
			"декабрь": 12, "декабря": 12, "дек": 12, "дек.": 12,
		},
		Weekdays: map[string]string{
			"понедельник": "monday", "пн": "monday",
			"вторник": "tuesday", "вт": "tuesday",
			"среда": "wednesday", "среду": "wednesday", "ср": "wednesday",
			"четверг": "thursday", "чт": "thursday",
			"пятница": "friday", "пятницу": "friday", "пт": "friday",
			"суббота": "saturday", "субботу": "saturday", "сб": "saturday",
			"воскресенье": "sunday", "вс": "sunday",
		},
		RelativeDays: map[string]int{
			"позавчера":   -2,
			"вчера":       -1,
			"сегодня":     0,
			"завтра":      1,
			"послезавтра": 2,
		},
		TimesOfDay: map[string]string{
			"полночь": "00:00",
			"утро":    "06:00", "утром": "06:00",
			"полдень": "12:00",
			"вечер":   "20:00", "вечером": "20:00",
		},
		Units: map[string]string{
			"секунд": "second", "секунда": "second", "секунду": "second", "секунды": "second",
			"минут": "minute", "минута": "minute", "минуту": "minute", "минуты": "minute",
			"часов": "hour", "час": "hour", "часа": "hour",
			"дней": "day", "день": "day", "дня": "day",
			"недель": "week", "неделя": "week", "неделю": "week", "недели": "week",
			"месяцев": "month", "месяц": "month", "месяца": "month",
			"лет": "year", "год": "year", "года": "year",
			"десятилетий": "decade", "десятилетие": "decade", "десятилетия": "decade",
		},
		Cardinals: map[string]int{
			"ноль": 0,
			"один": 1, "одна": 1, "одно": 1, "одну": 1,
			"два": 2, "две": 2,
			"три": 3, "четыре": 4, "пять": 5, "шесть": 6, "семь": 7,
			"восемь": 8, "девять": 9, "десять": 10, "одиннадцать": 11,
			"двенадцать": 12, "тринадцать": 13, "четырнадцать": 14, "пятнадцать": 15,
			"шестнадцать": 16, "семнадцать": 17, "восемнадцать": 18, "девятнадцать": 19,
			"двадцать": 20,
		},
		OrdinalSuffixes: []string{"-е", "е", "-го", "го"},
	}
}
