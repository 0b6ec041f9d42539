package scanner

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportPreseedsAllKinds(t *testing.T) {
	r := newReport()

	assert.True(t, r.Success)
	for _, kind := range AllKinds() {
		chunks, ok := r.Data[kind]
		assert.True(t, ok)
		assert.NotNil(t, chunks)
		assert.Empty(t, chunks)
		assert.Equal(t, 0, r.Summary[kind])
	}
	assert.Equal(t, 0, r.TotalChunks())
}

func TestReportAddResultAndError(t *testing.T) {
	r := newReport()

	r.addResult(KindProduct, []Chunk{{ID: "1"}, {ID: "2"}})
	r.addResult(KindPage, nil)
	r.addError(KindSetting, errors.New("settings table missing"))

	assert.False(t, r.Success)
	assert.Equal(t, 2, r.Summary[KindProduct])
	assert.Equal(t, 0, r.Summary[KindPage])
	assert.NotNil(t, r.Data[KindPage])
	assert.Equal(t, 2, r.TotalChunks())

	require.Len(t, r.Errors, 1)
	assert.Equal(t, KindSetting, r.Errors[0].Source)
	assert.Contains(t, r.Errors[0].Message, "settings table missing")
}

func TestReportJSONShape(t *testing.T) {
	r := newReport()
	r.addResult(KindProduct, []Chunk{{ID: "1", Type: KindProduct}})

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	// 没有数据的内容源在data中也有空数组，而不是缺键或null
	data := decoded["data"].(map[string]interface{})
	for _, kind := range AllKinds() {
		assert.Contains(t, data, string(kind))
		assert.NotNil(t, data[string(kind)])
	}
	assert.Contains(t, decoded, "errors")
	assert.Equal(t, []interface{}{}, decoded["errors"])
}
