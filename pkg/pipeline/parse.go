package pipeline

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/weights"
	"github.com/matzehuels/wordcloud/pkg/words"
)

// maxInputSize bounds word list input.
const maxInputSize = 4 << 20

// ParseWords reads a word list. Two formats are accepted:
//
//   - the stored JSON form, an array of [label, weight] pairs
//   - plain text, one word per line as "label" or "label<TAB|,>weight";
//     blank lines and lines starting with # are skipped
//
// A label listed several times in plain text accumulates its weights.
func ParseWords(r io.Reader) (words.Set, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read words")
	}
	if len(data) > maxInputSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "word list larger than %d bytes", maxInputSize)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if !weights.Validate(trimmed) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "JSON word list must be an array of [label, weight] pairs")
		}
		set, err := words.Decode(trimmed)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode word list")
		}
		return validateLabels(set.Dedupe())
	}
	return parseLines(data)
}

func parseLines(data []byte) (words.Set, error) {
	var set words.Set
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		label, weight := line, 1
		if i := strings.LastIndexAny(line, "\t,"); i >= 0 {
			w, err := strconv.Atoi(strings.TrimSpace(line[i+1:]))
			if err != nil || w < 0 {
				return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: weight must be a non-negative integer", n)
			}
			label, weight = strings.TrimSpace(line[:i]), w
		}

		if i := set.Index(label); i >= 0 {
			set[i].Weight += weight
			continue
		}
		set = append(set, words.Entry{Label: label, Weight: weight})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read words")
	}
	return validateLabels(set)
}

func validateLabels(set words.Set) (words.Set, error) {
	for _, e := range set {
		if err := errors.ValidateLabel(e.Label); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "word %q", e.Label)
		}
	}
	return set, nil
}
