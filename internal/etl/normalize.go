package etl

import (
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// defaultAliases 已知別字的精確對照表
var defaultAliases = map[string]string{
	"台北":   "臺北",
	"台北地院": "臺北地方法院",
	"台中":   "臺中",
	"台中地院": "臺中地方法院",
}

// defaultUnits 標準單位名稱清單
var defaultUnits = []string{
	"臺北地方法院",
	"臺中地方法院",
	"高雄地方法院",
}

// Warning 模糊比對分數不足時的告警，僅供人工檢視，不中斷流程
type Warning struct {
	Input   string // 原始（別名展開後）輸入
	Closest string // 最接近的標準單位
	Score   int    // 0-100 相似度
}

// Normalizer 所屬單位正規化：先查別名表，再對標準單位做模糊比對。
// 純函式，無 I/O，結果具決定性。
type Normalizer struct {
	aliases   map[string]string
	units     []string
	threshold int
}

// NewNormalizer 以內建別名表與標準單位清單建立正規化器。
// threshold 為替換門檻，分數需「大於」門檻才會替換。
func NewNormalizer(threshold int) *Normalizer {
	return &Normalizer{
		aliases:   defaultAliases,
		units:     defaultUnits,
		threshold: threshold,
	}
}

// NewNormalizerWithUnits 指定標準單位清單，測試用
func NewNormalizerWithUnits(threshold int, units []string) *Normalizer {
	return &Normalizer{
		aliases:   defaultAliases,
		units:     units,
		threshold: threshold,
	}
}

// Normalize 正規化單位名稱。分數不足門檻時保留輸入並回傳告警。
func (n *Normalizer) Normalize(unit string) (string, *Warning) {
	if mapped, ok := n.aliases[unit]; ok {
		unit = mapped
	}
	if len(n.units) == 0 {
		return unit, nil
	}

	best, bestScore := n.units[0], ratio(unit, n.units[0])
	for _, candidate := range n.units[1:] {
		// 同分時保留清單順序在前者
		if score := ratio(unit, candidate); score > bestScore {
			best, bestScore = candidate, score
		}
	}

	if bestScore > n.threshold {
		return best, nil
	}
	return unit, &Warning{Input: unit, Closest: best, Score: bestScore}
}

// ratio 以 Levenshtein 編輯距離換算 0-100 相似度
func ratio(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 100
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return (longest - dist) * 100 / longest
}
