package conjugate

// godanEndings maps a godan verb's terminal mora to its conjugation suffixes.
var godanEndings = map[rune]Forms{
	'う': {Polite: "います", Te: "って", Past: "った", Negative: "わない", Potential: "える"},
	'く': {Polite: "きます", Te: "いて", Past: "いた", Negative: "かない", Potential: "ける"},
	'ぐ': {Polite: "ぎます", Te: "いで", Past: "いだ", Negative: "がない", Potential: "げる"},
	'す': {Polite: "します", Te: "して", Past: "した", Negative: "さない", Potential: "せる"},
	'つ': {Polite: "ちます", Te: "って", Past: "った", Negative: "たない", Potential: "てる"},
	'ぬ': {Polite: "にます", Te: "んで", Past: "んだ", Negative: "なない", Potential: "ねる"},
	'ぶ': {Polite: "びます", Te: "んで", Past: "んだ", Negative: "ばない", Potential: "べる"},
	'む': {Polite: "みます", Te: "んで", Past: "んだ", Negative: "まない", Potential: "める"},
	'る': {Polite: "ります", Te: "って", Past: "った", Negative: "らない", Potential: "れる"},
}

// irregulars carries per-entry literal forms for verbs no rule covers.
var irregulars = map[string]Forms{
	"する": {Polite: "します", Te: "して", Past: "した", Negative: "しない", Potential: "できる"},
	"来る": {Polite: "来ます", Te: "来て", Past: "来た", Negative: "来ない", Potential: "来られる"},
	"くる": {Polite: "きます", Te: "きて", Past: "きた", Negative: "こない", Potential: "こられる"},
	"行く": {Polite: "行きます", Te: "行って", Past: "行った", Negative: "行かない", Potential: "行ける"},
	"いく": {Polite: "いきます", Te: "いって", Past: "いった", Negative: "いかない", Potential: "いける"},
	"ある": {Polite: "あります", Te: "あって", Past: "あった", Negative: "ない", Potential: "ありえる"},
}

// commonIchidan lists frequent ichidan verbs whose shape alone cannot prove
// their class.
var commonIchidan = map[string]bool{
	"食べる": true, "見る": true, "起きる": true, "寝る": true,
	"着る": true, "出る": true, "開ける": true, "閉める": true,
	"教える": true, "考える": true, "答える": true, "忘れる": true,
	"覚える": true, "始める": true, "信じる": true, "借りる": true,
	"たべる": true, "みる": true, "おきる": true, "ねる": true,
	"でる": true, "あける": true, "しめる": true,
}

// Vowel rows that precede る in ichidan verbs.
const (
	eRow = "えけせてねへめれげぜでべぺ"
	iRow = "いきしちにひみりぎじぢびぴ"
)
