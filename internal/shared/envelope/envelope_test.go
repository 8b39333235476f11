package envelope

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carebase/internal/shared/timefmt"
)

func TestNew(t *testing.T) {
	t.Run("embeds data and stamps meta", func(t *testing.T) {
		type widget struct {
			Name string `json:"name"`
		}
		resp := New(widget{Name: "w1"}, "PAT-abc")

		assert.Equal(t, "w1", resp.Data.Name)
		require.NotNil(t, resp.Meta)
		assert.Equal(t, "PAT-abc", resp.Meta.CorrelationID)
		assert.Nil(t, resp.Meta.Pagination)

		ts, err := time.Parse(timefmt.Layout, resp.Meta.Timestamp)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now(), ts, 5*time.Second)
	})

	t.Run("omits meta without a correlation ID", func(t *testing.T) {
		resp := New("bare", "")
		assert.Nil(t, resp.Meta)

		raw, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "meta")
	})

	t.Run("does not copy or mutate the data", func(t *testing.T) {
		m := map[string]any{"k": "v"}
		resp := New(m, "WOR-xyz")
		m["k2"] = "v2"
		assert.Equal(t, m, resp.Data)
	})
}

func TestNewList(t *testing.T) {
	resp := NewList([]int{1, 2, 3}, "KNO-123")
	require.NotNil(t, resp.Meta)
	assert.Equal(t, []int{1, 2, 3}, resp.Data)

	next := "cursor-a"
	resp.Meta.Pagination = &Pagination{NextCursor: &next, Limit: 3}

	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded struct {
		Data []int `json:"data"`
		Meta struct {
			CorrelationID string `json:"correlationId"`
			Pagination    struct {
				NextCursor *string `json:"nextCursor"`
				PrevCursor *string `json:"prevCursor"`
				Limit      int     `json:"limit"`
			} `json:"pagination"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "KNO-123", decoded.Meta.CorrelationID)
	assert.Equal(t, "cursor-a", *decoded.Meta.Pagination.NextCursor)
	assert.Nil(t, decoded.Meta.Pagination.PrevCursor)
	assert.Equal(t, 3, decoded.Meta.Pagination.Limit)
}
