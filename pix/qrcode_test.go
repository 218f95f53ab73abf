package pix

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQRImageURL(t *testing.T) {
	got := QRImageURL(criartPayload)

	want := "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" +
		"00020101021226670014br.gov.bcb.pix0120dsprestes7%40gmail.com0221Pagamento+-+Cliente+X" +
		"5204000053039865406150.005802BR5906Criart6009Sao+Paulo62180514CRIART1234567863041D1A" +
		"&format=png&ecc=M"
	assert.Equal(t, want, got)
	assert.True(t, strings.HasPrefix(got, "https://api.qrserver.com/v1/create-qr-code/?"))

	u, err := url.Parse(got)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, criartPayload, q.Get("data"))
	assert.Equal(t, "200x200", q.Get("size"))
	assert.Equal(t, "png", q.Get("format"))
	assert.Equal(t, "M", q.Get("ecc"))
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(criartPayload, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])

	_, err = RenderPNG("", 200)
	assert.Error(t, err)
}
