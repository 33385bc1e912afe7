// Package words defines the weighted label set shared by every wordcloud component.
//
// An [Entry] pairs a case-sensitive label with a non-negative integer weight. A
// weight of zero means the label is known (it appears in menus) but is not drawn.
// A [Set] is an ordered slice of entries with unique labels; order is insertion
// order and is preserved through persistence.
//
// # Wire Format
//
// Entries encode as two-element JSON arrays so the durable document is the same
// list-of-pairs format browser clients have always written:
//
//	[["Foguete",3],["Sonho",1],["Livro",0]]
//
// [Defaults] returns the built-in label set used when nothing has been stored
// yet or the stored document is unusable.
package words
