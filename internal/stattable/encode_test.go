package stattable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		nat      int
		conf     int
		want     string
	}{
		{"both ranks", 58.9, 1, 5, 2, "58.9|5|2"},
		{"no national", 23.5, 1, 0, 3, "23.5|_|3"},
		{"no conference", 14.0, 1, 8, 0, "14.0|8|_"},
		{"unranked", 0.65, 3, 0, 0, "0.650|_|_"},
		{"whole value keeps precision", 90.0, 1, 1, 1, "90.0|1|1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.value, tt.decimals, tt.nat, tt.conf))
		})
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	r, err := Decode("58.9|5|2")
	require.NoError(t, err)
	assert.Equal(t, Ranked{Value: 58.9, ValuePresent: true, National: 5, Conference: 2}, r)

	r, err = Decode("23.5|_|3")
	require.NoError(t, err)
	assert.Equal(t, Ranked{Value: 23.5, ValuePresent: true, Conference: 3}, r)

	r, err = Decode(EncodeMissing())
	require.NoError(t, err)
	assert.Equal(t, Ranked{}, r)
}

func TestDecodeMalformed(t *testing.T) {
	for _, s := range []string{"", "58.9", "58.9|5", "58.9|5|2|9", "x|1|1", "58.9|first|2", "58.9|0|1", "58.9|-3|1"} {
		t.Run(s, func(t *testing.T) {
			_, err := Decode(s)
			require.Error(t, err)
		})
	}
}
