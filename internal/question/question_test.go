package question

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Question {
	return Question{
		ID:    7,
		Topic: "history",
		Text:  Text{EN: "Who built Hadrian's Wall?", ZH: "谁建造了哈德良长城？"},
		Options: Options{
			EN: []string{"Vikings", "Romans", "Normans", "Saxons"},
			ZH: []string{"维京人", "罗马人", "诺曼人", "撒克逊人"},
		},
		CorrectIndex: 1,
	}
}

func TestTextResolve(t *testing.T) {
	txt := Text{EN: "hello", ZH: "你好"}
	assert.Equal(t, "hello", txt.Resolve(English))
	assert.Equal(t, "你好", txt.Resolve(Chinese))

	missing := Text{EN: "hello"}
	assert.Equal(t, "hello", missing.Resolve(Chinese), "empty zh falls back to en")
}

func TestOptionsResolve_PerIndexFallback(t *testing.T) {
	o := Options{EN: []string{"a", "b", "c"}, ZH: []string{"甲", ""}}
	assert.Equal(t, []string{"甲", "b", "c"}, o.Resolve(Chinese))
	assert.Equal(t, []string{"a", "b", "c"}, o.Resolve(English))
}

func TestParseLang(t *testing.T) {
	assert.Equal(t, Chinese, ParseLang("zh"))
	assert.Equal(t, English, ParseLang("en"))
	assert.Equal(t, English, ParseLang("fr"))
	assert.Equal(t, English, Chinese.Toggle())
	assert.Equal(t, Chinese, English.Toggle())
}

func TestValidate(t *testing.T) {
	q := sample()
	require.NoError(t, q.Validate())

	q.CorrectIndex = 4
	assert.Error(t, q.Validate())

	q = sample()
	q.Options.EN = nil
	assert.Error(t, q.Validate())

	q = sample()
	q.Text.EN = ""
	assert.Error(t, q.Validate())
}

func TestClone_IsDeep(t *testing.T) {
	q := sample()
	c := q.Clone()
	c.Options.EN[0] = "changed"
	c.Options.ZH[0] = "changed"
	assert.Equal(t, "Vikings", q.Options.EN[0])
	assert.Equal(t, "维京人", q.Options.ZH[0])
}

func TestShuffleOptions_KeepsCorrectOption(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 200; i++ {
		q := sample().Clone()
		wantEN := q.Options.EN[q.CorrectIndex]
		wantZH := q.Options.ZH[q.CorrectIndex]

		ShuffleOptions(&q, r)

		require.Len(t, q.Options.EN, 4)
		require.Len(t, q.Options.ZH, 4)
		assert.Equal(t, wantEN, q.Options.EN[q.CorrectIndex])
		assert.Equal(t, wantZH, q.Options.ZH[q.CorrectIndex])
		assert.ElementsMatch(t, sample().Options.EN, q.Options.EN)
	}
}

func TestShuffleOptions_AlignmentAcrossLanguages(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	base := sample()
	pairs := map[string]string{}
	for i, en := range base.Options.EN {
		pairs[en] = base.Options.ZH[i]
	}
	for i := 0; i < 50; i++ {
		q := base.Clone()
		ShuffleOptions(&q, r)
		for j, en := range q.Options.EN {
			assert.Equal(t, pairs[en], q.Options.ZH[j])
		}
	}
}

func TestShuffleOptions_PartialChinese(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	q := Question{
		ID:           1,
		Text:         Text{EN: "q"},
		Options:      Options{EN: []string{"a", "b", "c"}, ZH: []string{"甲"}},
		CorrectIndex: 2,
	}
	ShuffleOptions(&q, r)

	require.Len(t, q.Options.ZH, 3)
	assert.Equal(t, "c", q.Options.EN[q.CorrectIndex])
	assert.Equal(t, "c", q.Options.ZH[q.CorrectIndex], "missing zh entries carry the english text")
}

func TestShuffleOptions_NoChinese(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 8))
	q := Question{ID: 1, Text: Text{EN: "q"}, Options: Options{EN: []string{"a", "b"}}, CorrectIndex: 0}
	ShuffleOptions(&q, r)
	assert.Nil(t, q.Options.ZH)
	assert.Equal(t, "a", q.Options.EN[q.CorrectIndex])
}
