package search

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// tokenize 小写后按非字母数字切分
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// editBudget 与 Elasticsearch fuzziness=AUTO 一致：0-2 个字符不允许编辑，3-5 允许 1 次，更长允许 2 次
func editBudget(term string) int {
	switch n := utf8.RuneCountInString(term); {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	default:
		return 2
	}
}

// fuzzyMatch 任一查询词与任一文本词在编辑距离预算内即匹配
func fuzzyMatch(query, text string) bool {
	textTokens := tokenize(text)
	for _, q := range tokenize(query) {
		budget := editBudget(q)
		for _, t := range textTokens {
			if levenshtein.ComputeDistance(q, t) <= budget {
				return true
			}
		}
	}
	return false
}
