package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordID(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		id := IntID(42)
		n, ok := id.Int64()
		assert.True(t, ok)
		assert.Equal(t, int64(42), n)
		assert.False(t, id.IsZero())
		assert.False(t, id.IsString())
		assert.Equal(t, "42", id.String())
		assert.Equal(t, int64(42), id.Value())
	})

	t.Run("string", func(t *testing.T) {
		id := StringID("abc")
		_, ok := id.Int64()
		assert.False(t, ok)
		assert.True(t, id.IsString())
		assert.Equal(t, "abc", id.String())
		assert.Equal(t, "abc", id.Value())
	})

	t.Run("zero", func(t *testing.T) {
		assert.True(t, RecordID{}.IsZero())
		assert.True(t, StringID("").IsZero())
		assert.False(t, IntID(0).IsZero())
		assert.False(t, RecordID{}.IsSet())
		assert.True(t, StringID("").IsSet())
		assert.True(t, IntID(0).IsSet())
		assert.Nil(t, RecordID{}.Value())
		assert.Equal(t, "", RecordID{}.String())
	})

	t.Run("comparable", func(t *testing.T) {
		assert.Equal(t, IntID(7), IntID(7))
		assert.NotEqual(t, IntID(7), StringID("7"))
		assert.True(t, IntID(7) == ParseRecordID("7"))
	})
}

func TestParseRecordID(t *testing.T) {
	u := uuid.Must(uuid.NewV7()).String()

	assert.Equal(t, IntID(123), ParseRecordID("123"))
	assert.Equal(t, IntID(-5), ParseRecordID("-5"))
	assert.Equal(t, StringID(u), ParseRecordID(u))
	assert.Equal(t, StringID("12a"), ParseRecordID("12a"))
}

func TestRecordID_JSON(t *testing.T) {
	tests := []struct {
		name string
		id   RecordID
		json string
	}{
		{name: "int", id: IntID(42), json: `42`},
		{name: "negative int", id: IntID(-1), json: `-1`},
		{name: "string", id: StringID("ord_9f"), json: `"ord_9f"`},
		{name: "numeric string stays string", id: StringID("42"), json: `"42"`},
		{name: "zero", id: RecordID{}, json: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.JSONEq(t, tt.json, string(data))

			var got RecordID
			require.NoError(t, json.Unmarshal(data, &got))
			assert.Equal(t, tt.id, got)
		})
	}

	t.Run("rejects non integral numbers and other types", func(t *testing.T) {
		for _, input := range []string{`1.5`, `1e3`, `true`, `{}`, `[]`} {
			var got RecordID
			assert.Error(t, json.Unmarshal([]byte(input), &got), input)
		}
	})
}
