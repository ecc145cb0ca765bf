package translator

// Language describes a selectable target language.
type Language struct {
	Code       string
	Name       string
	NativeName string
	Flag       string
}

// DefaultLanguage is the target language used for users who have not
// picked one yet.
const DefaultLanguage = "fa"

// languages lists the selectable target languages in menu order.
var languages = []Language{
	{Code: "fa", Name: "Persian (Farsi)", NativeName: "فارسی", Flag: "🇮🇷"},
	{Code: "fr", Name: "French", NativeName: "Français", Flag: "🇫🇷"},
	{Code: "de", Name: "German", NativeName: "Deutsch", Flag: "🇩🇪"},
	{Code: "es", Name: "Spanish", NativeName: "Español", Flag: "🇪🇸"},
	{Code: "it", Name: "Italian", NativeName: "Italiano", Flag: "🇮🇹"},
	{Code: "tr", Name: "Turkish", NativeName: "Türkçe", Flag: "🇹🇷"},
	{Code: "ru", Name: "Russian", NativeName: "Русский", Flag: "🇷🇺"},
	{Code: "ar", Name: "Arabic", NativeName: "العربية", Flag: "🇸🇦"},
	{Code: "zh", Name: "Chinese", NativeName: "中文", Flag: "🇨🇳"},
}

// languageIndex maps codes to languages for O(1) lookup.
var languageIndex = func() map[string]Language {
	idx := make(map[string]Language, len(languages))
	for _, l := range languages {
		idx[l.Code] = l
	}
	return idx
}()

// Languages returns the selectable target languages in menu order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// LookupLanguage returns the language for code, or false if the code is
// not in the supported set.
func LookupLanguage(code string) (Language, bool) {
	l, ok := languageIndex[code]
	return l, ok
}
