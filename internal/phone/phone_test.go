package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE164(t *testing.T) {
	got, err := E164("082 345 6789", "ZA")
	require.NoError(t, err)
	assert.Equal(t, "+27823456789", got)

	got, err = E164("+27712345678", "ZA")
	require.NoError(t, err)
	assert.Equal(t, "+27712345678", got)
}

func TestE164Rejects(t *testing.T) {
	_, err := E164("not a number", "ZA")
	assert.Error(t, err)

	_, err = E164("0123", "ZA")
	assert.Error(t, err)
}

func TestWhatsAppLink(t *testing.T) {
	link, err := WhatsAppLink("0823456789", "ZA", "Hi John")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/27823456789?text=Hi+John", link)

	link, err = WhatsAppLink("0712345678", "ZA", "")
	require.NoError(t, err)
	assert.Equal(t, "https://wa.me/27712345678", link)
}
