package lexicon

// numberPattern is shared by NUMBER and NUMBERS_EXPRESSION.
const numberPattern = `[-+]?\d+([\.,]\d+)*%?\p{Sc}?`

var defaultAbbreviations = []string{
	"M.City", "V.I.P", "PGS.Ts", "MRS.", "Mrs.", "Man.United", "Mr.", "SHB.ĐN",
	"Gs.Bs", "U.S.A", "TMN.CSG", "Kts.Ts", "R.Madrid", "Tp.", "T.Ư", "D.C",
	"Gs.Tskh", "PGS.KTS", "GS.BS", "KTS.TS", "PGS-TS", "Co.", "S.H.E", "Ths.Bs",
	"T&T.HN", "MR.", "Ms.", "T.T.P", "TT.", "TP.", "ĐH.QGHN", "Gs.Kts",
	"Man.Utd", "GD-ĐT", "T.W", "Corp.", "ĐT.LA", "Dr.", "T&T", "HN.ACB",
	"GS.KTS", "MS.", "Prof.", "GS.TS", "PGs.Ts", "PGS.BS", "\ufeffBT.", "Ltd.",
	"ThS.BS", "Gs.Ts", "SL.NA", "Th.S", "Gs.Vs", "PGs.Bs", "T.O.P", "PGS.TS",
	"HN.T&T", "SG.XT", "O.T.C", "TS.BS", "Yahoo!", "Man.City", "MISS.", "HA.GL",
	"GS.Ts", "TBT.", "GS.VS", "GS.TSKH", "Ts.Bs", "M.U", "Gs.TSKH", "U.S",
	"Miss.", "GD.ĐT", "PGs.Kts", "St.", "Ng.", "Inc.", "Th.", "N.O.V.A",
}

var defaultExceptions = []string{
	"Wi-fi", "17+", "km/h", "M7", "M8", "21+", "G3", "M9", "G4", "km3", "m/s",
	"km2", "5g", "4G", "8K", "3g", "E9", "U21", "4K", "U23", "Z1", "Z2", "Z3",
	"Z4", "Z5", "Jong-un", "u19", "5s", "wi-fi", "18+", "Wi-Fi", "m2", "16+",
	"m3", "V-League", "Geun-hye", "5G", "4g", "Z3+", "3G", "km/s", "6+", "u21",
	"WI-FI", "u23", "U19", "6s", "4s",
}

var defaultEntities = []EntityPattern{
	{KindEllipsis, `\.{2,}`},
	{KindEmail, `([\w\d_\.-]+)@(([\d\w-]+)\.)*([\d\w-]+)`},
	{KindFullDate, `(0?[1-9]|[12][0-9]|3[01])(\/|-|\.)(1[0-2]|(0?[1-9]))((\/|-|\.)\d{4})`},
	{KindMonth, `(1[0-2]|(0?[1-9]))(\/)\d{4}`},
	{KindDate, `(0?[1-9]|[12][0-9]|3[01])(\/)(1[0-2]|(0?[1-9]))`},
	{KindTime, `(\d\d:\d\d:\d\d)|((0?\d|1\d|2[0-3])(:|h)(0?\d|[1-5]\d)(’|'|p|ph)?)`},
	{KindMoney, `\p{Sc}\d+([\.,]\d+)*|\d+([\.,]\d+)*\p{Sc}`},
	{KindPhoneNumber, `(\(?\+\d{1,2}\)?[\s\.-]?)?\d{2,}[\s\.-]?\d{3,}[\s\.-]?\d{3,}`},
	{KindURL, `(((https?|ftp):\/\/|www\.)[^\s/$.?#].[^\s]*)|(https?:\/\/)?(www\.)?[-a-zA-Z0-9@:%._\+~#=]{2,256}\.[a-z]{2,6}\b([-a-zA-Z0-9@:%_\+.~#?&//=]*)`},
	{KindNumber, numberPattern},
	{KindPunctuation, `,|\.|:|\?|!|;|-|_|"|'|“|”|\||\(|\)|\[|\]|\{|\}|⟨|⟩|«|»|\\|\/|‘|’|…|·`},
	{KindSpecialChar, `\~|\@|\#|\^|\&|\*|\+|\-|–|<|>|\|`},
	{KindEOSPunctuation, `(\.+|\?|!|…)`},
	{KindShortName, `([\p{L}]+([\.\-][\p{L}]+)+)|([\p{L}]+-\d+)`},
	{KindWordWithHyphen, `\p{L}+-\p{L}+(-\p{L}+)*`},
	{KindAllCap, `[A-Z]+\.[A-Z]+`},
	{KindNumbersExpression, numberPattern + `([\+\-\*\/]` + numberPattern + `)*`},
}

// Default returns a fresh copy of the built-in Vietnamese lexicon.
func Default() Lexicon {
	return Lexicon{
		Abbreviations: defaultAbbreviations,
		Exceptions:    defaultExceptions,
		Entities:      defaultEntities,
	}.Clone()
}
