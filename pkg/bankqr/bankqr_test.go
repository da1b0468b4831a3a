package bankqr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCode_StaticTable(t *testing.T) {
	r := NewResolver()

	code, err := r.ResolveCode("Vietcombank")
	require.NoError(t, err)
	assert.Equal(t, "VCB", code)

	// Names are matched case-insensitively with whitespace trimmed
	code, err = r.ResolveCode("  MB Bank  ")
	require.NoError(t, err)
	assert.Equal(t, "MB", code)

	_, err = r.ResolveCode("Some Unknown Bank")
	assert.Error(t, err)

	_, err = r.ResolveCode("   ")
	assert.Error(t, err)
}

func TestResolveCode_RemoteList(t *testing.T) {
	r := NewResolver()
	r.remote = map[string]string{
		"ngan hang abc": "ABC",
	}

	code, err := r.ResolveCode("Ngan Hang ABC")
	require.NoError(t, err)
	assert.Equal(t, "ABC", code)

	// Partial names match against remote aliases
	code, err = r.ResolveCode("abc")
	require.NoError(t, err)
	assert.Equal(t, "ABC", code)
}

func TestFormatQRURL(t *testing.T) {
	url, err := FormatQRURL(QRRequest{
		BankCode:      "VCB",
		AccountNumber: "0123456789",
		AccountHolder: "NGUYEN VAN A",
		Amount:        400000,
		Description:   "HD000001",
	})
	require.NoError(t, err)

	assert.Contains(t, url, "https://img.vietqr.io/image/VCB-0123456789-compact2.png")
	assert.Contains(t, url, "amount=400000")
	assert.Contains(t, url, "addInfo=HD000001")
	assert.Contains(t, url, "accountName=NGUYEN+VAN+A")
}

func TestFormatQRURL_MinimalRequest(t *testing.T) {
	url, err := FormatQRURL(QRRequest{BankCode: "ACB", AccountNumber: "99999"})
	require.NoError(t, err)
	assert.Equal(t, "https://img.vietqr.io/image/ACB-99999-compact2.png", url)
}

func TestFormatQRURL_RequiresBankAndAccount(t *testing.T) {
	_, err := FormatQRURL(QRRequest{AccountNumber: "123"})
	assert.Error(t, err)

	_, err = FormatQRURL(QRRequest{BankCode: "VCB"})
	assert.Error(t, err)
}
