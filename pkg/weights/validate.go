package weights

import (
	"math"
	"strings"

	"github.com/tidwall/gjson"
)

// Validate reports whether raw is a JSON array whose elements are all
// [string, non-negative integer] pairs. It checks shape and types only.
func Validate(raw []byte) bool {
	if !gjson.ValidBytes(raw) {
		return false
	}
	doc := gjson.ParseBytes(raw)
	if !doc.IsArray() {
		return false
	}
	ok := true
	doc.ForEach(func(_, pair gjson.Result) bool {
		ok = validPair(pair)
		return ok
	})
	return ok
}

func validPair(pair gjson.Result) bool {
	if !pair.IsArray() {
		return false
	}
	items := pair.Array()
	if len(items) != 2 {
		return false
	}
	if items[0].Type != gjson.String {
		return false
	}
	w := items[1]
	if w.Type != gjson.Number || strings.ContainsAny(w.Raw, ".eE") {
		return false
	}
	return w.Num >= 0 && w.Num == math.Trunc(w.Num) && w.Num <= math.MaxInt32
}
