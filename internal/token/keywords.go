package token

var keywords = map[string]Kind{
	"namespace": KwNamespace,
	"extern":    KwExtern,
	"using":     KwUsing,
	"fragment":  KwFragment,
	"modifier":  KwModifier,
	"entity":    KwEntity,
	"display":   KwDisplay,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые — только lowercase версии распознаются.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
