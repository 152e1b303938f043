package network_test

import (
	"encoding/json"
	"pulse-tools/pulsetools/network"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	require := require.New(t)

	tests := map[string]struct {
		input string
		want  network.Category
	}{
		"5g":         {input: "5g", want: network.FiveG},
		"5g_upper":   {input: "5G", want: network.FiveG},
		"4g":         {input: "4g", want: network.FourG},
		"lte":        {input: "LTE", want: network.FourG},
		"3g":         {input: "3g", want: network.ThreeG},
		"2g":         {input: "2G", want: network.TwoG},
		"edge":       {input: "Edge", want: network.TwoG},
		"wifi":       {input: "WiFi", want: network.Wifi},
		"padded":     {input: " wifi ", want: network.Wifi},
		"unknown":    {input: "unknown", want: network.Unknown},
		"empty":      {input: "", want: network.Unknown},
		"gibberish":  {input: "xyz", want: network.Unknown},
		"near_match": {input: "5gg", want: network.Unknown},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(tc.want, network.Classify(tc.input))
		})
	}
}

func TestColors(t *testing.T) {
	require := require.New(t)

	require.Equal("#00FF00", network.FiveG.Hex())
	require.Equal("#FFFF00", network.FourG.Hex())
	require.Equal("#0000FF", network.ThreeG.Hex())
	require.Equal("#FF0000", network.TwoG.Hex())
	require.Equal("#FF00FF", network.Wifi.Hex())
	require.Equal("#888888", network.Unknown.Hex())
	require.Equal("#888888", network.Category(42).Hex())
}

func TestCategoryText(t *testing.T) {
	require := require.New(t)

	for _, c := range network.Categories() {
		b, err := json.Marshal(c)
		require.NoError(err)

		var got network.Category
		require.NoError(json.Unmarshal(b, &got))
		require.Equal(c, got)
	}

	var c network.Category
	require.NoError(c.UnmarshalText([]byte("lte")))
	require.Equal(network.FourG, c)
	require.Equal("unknown", network.Category(-1).String())
}
