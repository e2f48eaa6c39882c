package rulegen

import "strings"

// languageData holds the orthography facts for one supported language.
// Kept small and embedded: orthography barely changes and needs no model.
type languageData struct {
	Alphabet []string
	Digraphs []string
	Notes    string
}

var orthographies = map[string]languageData{
	"EN": {
		Alphabet: strings.Fields("a b c d e f g h i j k l m n o p q r s t u v w x y z"),
		Digraphs: strings.Fields("ch sh th ph wh ck ng qu"),
		Notes:    "English spelling is highly irregular; sound-to-letter mappings must be learned per word family.",
	},
	"ES": {
		Alphabet: strings.Fields("a b c d e f g h i j k l m n ñ o p q r s t u v w x y z"),
		Digraphs: strings.Fields("ch ll rr gu qu"),
		Notes:    "Spanish spelling is mostly phonemic. The letter h is silent; b and v sound identical.",
	},
	"DE": {
		Alphabet: strings.Fields("a ä b c d e f g h i j k l m n o ö p q r s ß t u ü v w x y z"),
		Digraphs: strings.Fields("ch ck ei ie eu äu sch st sp"),
		Notes:    "German nouns are capitalized. ß appears only after long vowels and diphthongs.",
	},
	"FR": {
		Alphabet: strings.Fields("a à â b c ç d e é è ê ë f g h i î ï j k l m n o ô œ p q r s t u ù û ü v w x y ÿ z"),
		Digraphs: strings.Fields("ai au eau ou oi on an en in un gn ch"),
		Notes:    "French has many silent final consonants; accents change vowel quality and meaning.",
	},
	"IT": {
		Alphabet: strings.Fields("a b c d e f g h i l m n o p q r s t u v z"),
		Digraphs: strings.Fields("ch gh gl gn sc ci gi"),
		Notes:    "Italian uses j, k, w, x, y only in loanwords. Double consonants are phonemically distinct.",
	},
}
