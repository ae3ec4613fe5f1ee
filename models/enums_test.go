package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTypeCodes(t *testing.T) {
	cases := []struct {
		code int
		want PrintType
	}{
		{0, ScreenCups},
		{1, Pad},
		{2, Hotstamp},
		{3, OffsetCups},
		{4, OffsetNapkins},
		{5, Digital},
		{6, ScreenNapkins},
	}
	for _, tc := range cases {
		got, err := PrintTypeFromCode(tc.code)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
		assert.Equal(t, tc.code, got.Code())
	}
}

func TestPrintTypeUnknownCode(t *testing.T) {
	_, err := PrintTypeFromCode(42)
	require.Error(t, err)

	var unknown *UnknownCodeError
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, "42", unknown.Value)
}

func TestPrintTypeNames(t *testing.T) {
	for _, p := range PrintTypes {
		got, err := PrintTypeFromName(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	_, err := PrintTypeFromName("Embroidery")
	assert.Error(t, err)
}

func TestPrintingCompany(t *testing.T) {
	c, err := PrintingCompanyFromCode(2)
	require.NoError(t, err)
	assert.Equal(t, AmericanYachtSupply, c)
	assert.Equal(t, "American Yacht Supply", c.String())

	_, err = PrintingCompanyFromCode(3)
	assert.Error(t, err)

	c, err = PrintingCompanyFromName("American Cabin Supply")
	require.NoError(t, err)
	assert.Equal(t, AmericanCabinSupply, c)
}

func TestUserCan(t *testing.T) {
	u := User{UserName: "press", AccessFlags: MarkAsDone | HoldOrders}
	assert.True(t, u.Can(MarkAsDone))
	assert.True(t, u.Can(MarkAsDone|HoldOrders))
	assert.False(t, u.Can(DeleteUser))

	readOnly := User{UserName: "viewer"}
	assert.False(t, readOnly.Can(MarkAsDone))

	admin := User{UserName: "admin", AccessFlags: AllAccess}
	assert.True(t, admin.Can(UserPrivileges|CancelOrders))
}
