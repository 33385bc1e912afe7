package words

// defaultLabels is the built-in vocabulary shown before anyone has voted.
var defaultLabels = []string{
	"Foguete", "Sonho", "Persistência", "Nós", "Brasil",
	"Livro", "Descoberta", "Sustentabilidade", "Fórmula", "Fundamental",
	"Futuro", "Calculadora", "Tudo", "Inspiração", "Engrenagem",
	"Vida", "Teoria", "Saúde", "Ideia", "Necessidade",
	"Lupa", "Esperança", "Laboratório", "Chip", "Humanidade",
	"Avião", "Soberania", "Átomo", "Eu", "Universo",
	"Pesquisa", "Democracia", "Mundo", "Comunidade", "Superação",
	"Microscópio", "Trabalho", "Educação", "Incrível", "Gente",
	"Conhecimento", "União", "Amor",
}

// Defaults returns the built-in default set: every default label at weight 0.
// The returned set is a fresh copy.
func Defaults() Set {
	s := make(Set, len(defaultLabels))
	for i, label := range defaultLabels {
		s[i] = Entry{Label: label}
	}
	return s
}

// DefaultLabels returns the built-in vocabulary in display order.
func DefaultLabels() []string {
	out := make([]string, len(defaultLabels))
	copy(out, defaultLabels)
	return out
}
