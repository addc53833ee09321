package etl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAlias(t *testing.T) {
	n := NewNormalizer(80)

	// 別名展開後與標準單位差距仍大，保留別名展開結果
	got, warning := n.Normalize("台北")
	assert.Equal(t, "臺北", got)
	require.NotNil(t, warning)
	assert.LessOrEqual(t, warning.Score, 80)

	got, warning = n.Normalize("台北地院")
	assert.Equal(t, "臺北地方法院", got)
	assert.Nil(t, warning)
}

func TestNormalizeCanonicalUnchanged(t *testing.T) {
	n := NewNormalizer(80)

	got, warning := n.Normalize("臺北地方法院")
	assert.Equal(t, "臺北地方法院", got)
	assert.Nil(t, warning)
}

func TestNormalizeUnrelatedInput(t *testing.T) {
	n := NewNormalizerWithUnits(80, []string{"臺北地方法院", "臺中地方法院", "高雄地方法院"})

	got, warning := n.Normalize("完全不相關單位")
	assert.Equal(t, "完全不相關單位", got)
	require.NotNil(t, warning)
	assert.Equal(t, "完全不相關單位", warning.Input)
	assert.LessOrEqual(t, warning.Score, 80)
	// 同分時取清單順序在前者
	assert.Equal(t, "臺北地方法院", warning.Closest)
}

func TestNormalizeNearMiss(t *testing.T) {
	n := NewNormalizer(80)

	// 只差一個字，分數超過門檻，修正為標準名稱
	got, warning := n.Normalize("臺南地方法院")
	assert.Equal(t, "臺北地方法院", got)
	assert.Nil(t, warning)
}

func TestNormalizeThresholdConfigurable(t *testing.T) {
	strict := NewNormalizerWithUnits(99, []string{"臺北地方法院"})
	got, warning := strict.Normalize("臺南地方法院")
	assert.Equal(t, "臺南地方法院", got)
	require.NotNil(t, warning)

	loose := NewNormalizerWithUnits(30, []string{"臺北地方法院"})
	got, warning = loose.Normalize("臺北")
	assert.Equal(t, "臺北地方法院", got)
	assert.Nil(t, warning)
}

func TestNormalizeTieBreakDeterministic(t *testing.T) {
	n := NewNormalizerWithUnits(80, []string{"臺中地方法院", "臺北地方法院"})

	// 與兩者距離相同，應修正為清單中排前面的
	got, warning := n.Normalize("臺南地方法院")
	assert.Equal(t, "臺中地方法院", got)
	assert.Nil(t, warning)
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, ratio("臺北地方法院", "臺北地方法院"))
	assert.Equal(t, 0, ratio("完全不相關單位", "臺北地方法院"))
	assert.Equal(t, 100, ratio("", ""))
}
