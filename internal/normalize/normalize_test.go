package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ranjanashish/leh-registry/internal/domain/repository"
	"github.com/ranjanashish/leh-registry/internal/normalize"
)

func TestRecord_OptionalTextDefaultsToSentinel(t *testing.T) {
	out, err := normalize.Record(map[string]any{"location": "Gate-3"})
	require.NoError(t, err)

	assert.Equal(t, "N/A", out.Description)
	assert.Equal(t, "N/A", out.PermissionType)
	assert.Equal(t, "N/A", out.Agency)
	assert.Equal(t, "N/A", out.Applicable)
	assert.Equal(t, "N/A", out.Registered)
	assert.Equal(t, "N/A", out.RegistrationNumber)
	assert.Equal(t, "N/A", out.Remarks)
}

func TestRecord_OptionalTextTrimmed(t *testing.T) {
	out, err := normalize.Record(map[string]any{
		"location":    "Gate-3",
		"description": "  explosives storage  ",
		"agency":      "\tPESO\n",
		"remarks":     "   ", // sólo espacios ⇒ sentinel
	})
	require.NoError(t, err)

	assert.Equal(t, "explosives storage", out.Description)
	assert.Equal(t, "PESO", out.Agency)
	assert.Equal(t, "N/A", out.Remarks)
}

func TestRecord_LocationRequired(t *testing.T) {
	cases := []map[string]any{
		{},
		{"location": ""},
		{"location": "   "},
		{"location": nil},
		{"location": "  ", "description": "something", "quantity": "5"},
	}
	for _, raw := range cases {
		_, err := normalize.Record(raw)
		require.Error(t, err)
		assert.True(t, repository.IsInvalidInput(err))
	}
}

func TestRecord_Quantity(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want *int64
	}{
		{"digits with leading zero", "042", i64(42)},
		{"plain digits", "7", i64(7)},
		{"json number", float64(7), i64(7)},
		{"decimal string", "12.5", nil},
		{"decimal number", float64(12.5), nil},
		{"negative", "-3", nil},
		{"non numeric", "many", nil},
		{"empty", "", nil},
		{"absent", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := normalize.Record(map[string]any{"location": "X", "quantity": tc.in})
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, out.Quantity)
			} else {
				require.NotNil(t, out.Quantity)
				assert.Equal(t, *tc.want, *out.Quantity)
			}
		})
	}
}

func TestRecord_ValidityAsymmetry(t *testing.T) {
	// validity NO usa el sentinel: vacía o "N/A" ⇒ null, no "N/A".
	out, err := normalize.Record(map[string]any{"location": "X", "validity": "N/A"})
	require.NoError(t, err)
	assert.Nil(t, out.Validity)

	out, err = normalize.Record(map[string]any{"location": "X", "validity": ""})
	require.NoError(t, err)
	assert.Nil(t, out.Validity)

	out, err = normalize.Record(map[string]any{"location": "X"})
	require.NoError(t, err)
	assert.Nil(t, out.Validity)

	out, err = normalize.Record(map[string]any{"location": "X", "validity": " 2025 "})
	require.NoError(t, err)
	require.NotNil(t, out.Validity)
	assert.Equal(t, "2025", *out.Validity)
}

func TestRecord_UserIDPassThrough(t *testing.T) {
	out, err := normalize.Record(map[string]any{"location": "X", "user_id": "64b1f0aa"})
	require.NoError(t, err)
	require.NotNil(t, out.UserID)
	assert.Equal(t, "64b1f0aa", *out.UserID)

	// falsy ⇒ null, sin validación de existencia.
	for _, v := range []any{nil, "", float64(0), false} {
		out, err = normalize.Record(map[string]any{"location": "X", "user_id": v})
		require.NoError(t, err)
		assert.Nil(t, out.UserID)
	}
}

func i64(n int64) *int64 { return &n }
